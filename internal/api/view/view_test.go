package view

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderer_Pages(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name string
		data any
		want string
	}{
		{Login, map[string]any{"Error": "Please sign in"}, "Please sign in"},
		{VerifySuccess, nil, "verified"},
		{VerifyFailure, nil, "invalid"},
		{ForgotPassword, Page{Message: "If that email exists"}, "If that email exists"},
		{ResetPassword, Page{Token: "abc123"}, "/password/reset/abc123"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := r.Render(&buf, tc.name, tc.data, nil); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !strings.Contains(buf.String(), tc.want) {
				t.Fatalf("expected %q in output:\n%s", tc.want, buf.String())
			}
		})
	}
}

func TestRenderer_EscapesInput(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, ForgotPassword, Page{Error: "<script>x</script>"}, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(buf.String(), "<script>") {
		t.Fatalf("error message was not escaped")
	}
}

func TestRenderer_UnknownView(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.Render(&bytes.Buffer{}, "nope", nil, nil); err == nil {
		t.Fatalf("expected error for unknown view")
	}
}
