package blob

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"
)

// Bucket stores objects in a Firebase Storage (Google Cloud Storage) bucket and
// returns Firebase download URLs.
type Bucket struct {
	handle *storage.BucketHandle
	name   string
}

// NewBucket opens bucketName through the app's storage client.
func NewBucket(ctx context.Context, app *firebase.App, bucketName string) (*Bucket, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Firebase Storage client: %w", err)
	}
	handle, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("error opening bucket %s: %w", bucketName, err)
	}
	return &Bucket{handle: handle, name: bucketName}, nil
}

// Put uploads r as name. A download token is attached so the returned URL works
// without signed requests.
func (b *Bucket) Put(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	token := uuid.NewString()

	w := b.handle.Object(name).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{"firebaseStorageDownloadTokens": token}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload %s: %w", name, err)
	}

	return DownloadURL(b.name, name, token), nil
}

// DownloadURL is the public Firebase Storage URL for an object with a download token.
func DownloadURL(bucket, object, token string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket, url.PathEscape(object), url.QueryEscape(token))
}
