package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

// formFile opens the multipart file under field. It returns a nil input when
// the field is absent or the body is not multipart. The returned close func
// is never nil.
func formFile(c echo.Context, field string) (*ports.FileInput, func(), error) {
	noop := func() {}

	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, domain.Invalid("Upload error: " + err.Error())
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, domain.Invalid("Upload error: could not read file.")
	}

	return &ports.FileInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Content:     f,
	}, func() { _ = f.Close() }, nil
}

// requiredFile is formFile for endpoints where the upload is the whole point.
func requiredFile(c echo.Context, field string) (*ports.FileInput, func(), error) {
	in, closeFn, err := formFile(c, field)
	if err != nil {
		return nil, closeFn, err
	}
	if in == nil {
		return nil, closeFn, domain.Invalid("Please select a file to upload.")
	}
	return in, closeFn, nil
}
