package service

import (
	"context"
	"io"
)

type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error)
	Delete(ctx context.Context, publicID string) error
	// TransformURL builds the delivery URL of an uploaded image with a named transformation.
	TransformURL(publicID string, transformation string) (string, error)
}
