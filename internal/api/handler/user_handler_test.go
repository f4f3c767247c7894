package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

func TestConnectionHandler_SetBlockStatus(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantErr  bool
		wantFlag bool
	}{
		{"block", `{"isBlocked":true}`, false, true},
		{"unblock", `{"isBlocked":false}`, false, false},
		{"missing flag", `{}`, true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, _ := newEcho()
			var gotFlag *bool
			stub := &stubConnectionService{
				setBlockedFn: func(ctx context.Context, callerID, targetID string, blocked bool) error {
					if callerID != "admin" || targetID != "u9" {
						t.Fatalf("unexpected ids: %s %s", callerID, targetID)
					}
					gotFlag = &blocked
					return nil
				},
			}
			handler := NewConnectionHandler(stub)

			req := httptest.NewRequest(http.MethodPut, "/api/user/u9/block-status", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := withUser(e.NewContext(req, rec), "admin")
			c.SetParamNames("id")
			c.SetParamValues("u9")

			err := handler.SetBlockStatus(c)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrValidation) || gotFlag != nil {
					t.Fatalf("expected validation error without a call, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if gotFlag == nil || *gotFlag != tc.wantFlag {
				t.Fatalf("expected blocked=%v", tc.wantFlag)
			}
		})
	}
}

func TestProfileHandler_UploadProfilePicture_MissingFile(t *testing.T) {
	e, _ := newEcho()
	stub := &stubProfileService{
		uploadPictureFn: func(ctx context.Context, userID string, file ports.FileInput) (string, error) {
			t.Fatalf("service must not be called")
			return "", nil
		},
	}
	handler := NewProfileHandler(stub)

	body, ct := multipartBody(t, map[string]string{"note": "x"}, "", "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/profile/upload-profile-picture", body)
	req.Header.Set(echo.HeaderContentType, ct)

	err := handler.UploadProfilePicture(withUser(e.NewContext(req, httptest.NewRecorder()), "u1"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProfileHandler_UploadProfilePicture(t *testing.T) {
	e, _ := newEcho()
	stub := &stubProfileService{
		uploadPictureFn: func(ctx context.Context, userID string, file ports.FileInput) (string, error) {
			if userID != "u1" || file.Filename != "me.jpg" || file.Size != 4 {
				t.Fatalf("unexpected upload: %s %+v", userID, file)
			}
			return "/uploads/profile-pictures/profile-1-deadbeef.jpg", nil
		},
	}
	handler := NewProfileHandler(stub)

	body, ct := multipartBody(t, nil, "profilePicture", "me.jpg", []byte{0xff, 0xd8, 0xff, 0xe0})
	req := httptest.NewRequest(http.MethodPost, "/api/profile/upload-profile-picture", body)
	req.Header.Set(echo.HeaderContentType, ct)
	rec := httptest.NewRecorder()

	if err := handler.UploadProfilePicture(withUser(e.NewContext(req, rec), "u1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "profile-1-deadbeef.jpg") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}
