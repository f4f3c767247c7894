// Package storage keeps uploaded files on the local filesystem under a single
// root and hands out stable reference paths of the form /uploads/<sub>/<name>.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

const (
	// URLPrefix is the public prefix of every reference path.
	URLPrefix = "/uploads/"

	defaultAvatarDir = "default-avatars"
	sniffLen         = 3072
)

type rule struct {
	dir     string
	prefix  string
	allowed map[string][]string // mime -> accepted extensions
	reject  string
}

var imageTypes = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/gif":  {".gif"},
	"image/webp": {".webp"},
}

var rules = map[domain.UploadKind]rule{
	domain.UploadProfilePicture: {
		dir: "profile-pictures", prefix: "profile-", allowed: imageTypes,
		reject: "Only image files (jpeg, png, gif, webp) are allowed.",
	},
	domain.UploadResume: {
		dir: "resumes", prefix: "resume-", allowed: map[string][]string{"application/pdf": {".pdf"}},
		reject: "Only PDF files are allowed.",
	},
	domain.UploadPostImage: {
		dir: "posts", prefix: "post-", allowed: imageTypes,
		reject: "Only image files (jpeg, png, gif, webp) are allowed.",
	},
}

// Local stores uploads below root.
type Local struct {
	root     string
	maxBytes int64
	now      func() time.Time
}

func NewLocal(root string, maxBytes int64) (*Local, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve upload root: %w", err)
	}
	for _, r := range rules {
		if err := os.MkdirAll(filepath.Join(abs, r.dir), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &Local{root: abs, maxBytes: maxBytes, now: time.Now}, nil
}

// Save checks the declared size, the sniffed content type and the extension,
// then streams the file to disk. The written size is capped at maxBytes.
func (l *Local) Save(_ context.Context, kind domain.UploadKind, file ports.FileInput) (string, error) {
	r, ok := rules[kind]
	if !ok {
		return "", fmt.Errorf("%w: unknown upload kind %q", domain.ErrInvalidUpload, kind)
	}
	if file.Content == nil {
		return "", fmt.Errorf("%w: empty file", domain.ErrInvalidUpload)
	}
	if file.Size > l.maxBytes {
		return "", l.tooLarge()
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if n == 0 {
		return "", fmt.Errorf("%w: empty file", domain.ErrInvalidUpload)
	}
	head = head[:n]

	ext, err := r.extension(mimetype.Detect(head), file.Filename)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s%d-%s%s", r.prefix, l.now().UnixMilli(), shortID(), ext)
	dst := filepath.Join(l.root, r.dir, name)
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}

	body := io.MultiReader(bytes.NewReader(head), file.Content)
	written, err := io.Copy(out, io.LimitReader(body, l.maxBytes+1))
	closeErr := out.Close()
	switch {
	case err != nil:
		_ = os.Remove(dst)
		return "", fmt.Errorf("write upload: %w", err)
	case closeErr != nil:
		_ = os.Remove(dst)
		return "", fmt.Errorf("write upload: %w", closeErr)
	case written > l.maxBytes:
		_ = os.Remove(dst)
		return "", l.tooLarge()
	}

	return URLPrefix + path.Join(r.dir, name), nil
}

func (l *Local) tooLarge() error {
	return fmt.Errorf("%w: maximum size is %d MB", domain.ErrUploadTooLarge, l.maxBytes>>20)
}

// extension returns the stored extension. The client's extension must agree
// with the sniffed type; a missing one is derived from the type.
func (r rule) extension(mt *mimetype.MIME, filename string) (string, error) {
	for m := mt; m != nil; m = m.Parent() {
		exts, ok := r.allowed[m.String()]
		if !ok {
			continue
		}
		given := strings.ToLower(filepath.Ext(filename))
		if given == "" {
			return exts[0], nil
		}
		for _, e := range exts {
			if e == given {
				return given, nil
			}
		}
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidUpload, r.reject)
	}
	return "", fmt.Errorf("%w: %s", domain.ErrInvalidUpload, r.reject)
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Remove deletes the file behind ref. References outside the upload root or
// pointing at the default avatars are refused; missing files are not an error.
func (l *Local) Remove(_ context.Context, ref string) error {
	p, err := l.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

func (l *Local) resolve(ref string) (string, error) {
	if !strings.HasPrefix(ref, URLPrefix) {
		return "", fmt.Errorf("%w: %q is not an upload path", domain.ErrInvalidUpload, ref)
	}
	rel := filepath.FromSlash(strings.TrimPrefix(ref, URLPrefix))
	p := filepath.Join(l.root, rel)

	inside, err := filepath.Rel(l.root, p)
	if err != nil || inside == "." || strings.HasPrefix(inside, "..") {
		return "", fmt.Errorf("%w: %q escapes the upload root", domain.ErrInvalidUpload, ref)
	}
	if first := strings.SplitN(filepath.ToSlash(inside), "/", 2)[0]; first == defaultAvatarDir {
		return "", fmt.Errorf("%w: default avatars are never removed", domain.ErrInvalidUpload)
	}
	return p, nil
}
