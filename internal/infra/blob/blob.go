// Package blob stores uploaded files and hands back a public URL for them.
package blob

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

type Uploader interface {
	// Upload stores the bytes under name and returns a fetchable URL.
	Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// NewName returns a fresh object name that keeps the extension of original.
func NewName(original string) string {
	ext := strings.ToLower(path.Ext(original))
	return uuid.NewString() + ext
}
