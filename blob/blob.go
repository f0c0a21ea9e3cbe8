// Package blob stores proof-of-payment files and returns a URL for each.
package blob

import (
	"context"
	"io"
)

// Store persists one object and returns the URL it can be fetched from.
type Store interface {
	Put(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}
