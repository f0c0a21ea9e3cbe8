package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Dir stores objects as files under Root and serves them under BaseURL.
type Dir struct {
	Root    string
	BaseURL string
}

// NewDir creates root if needed.
func NewDir(root, baseURL string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create proof directory: %w", err)
	}
	return &Dir{Root: root, BaseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Put writes r to Root/name. The content type is implied by the file and not stored.
func (d *Dir) Put(ctx context.Context, name, _ string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", errors.New("invalid object name")
	}

	path := filepath.Join(d.Root, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", name, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close %s: %w", name, err)
	}

	return d.BaseURL + "/" + url.PathEscape(name), nil
}
