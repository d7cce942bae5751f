package storage

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relnote/pkg/domain/types"
	"google.golang.org/api/option"
)

// DefaultBucket matches the container name release notes have always been written to
const DefaultBucket = "releasenotes"

const textContentType = "text/plain; charset=utf-8"

// Client writes and reads release note objects in one Cloud Storage bucket
type Client struct {
	client *storage.Client
	bucket string
}

// New creates a new Cloud Storage client
func New(ctx context.Context, bucket string, opts ...option.ClientOption) (*Client, error) {
	if bucket == "" {
		return nil, goerr.New("storage bucket is required")
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Cloud Storage client")
	}

	return &Client{
		client: client,
		bucket: bucket,
	}, nil
}

// WriteText uploads content as name, overwriting an existing object
func (c *Client) WriteText(ctx context.Context, name, content string) error {
	w := c.client.Bucket(c.bucket).Object(name).NewWriter(ctx)
	w.ContentType = textContentType

	if _, err := io.WriteString(w, content); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write object",
			goerr.V("bucket", c.bucket),
			goerr.V("name", name))
	}

	// The upload is committed by Close
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to upload object",
			goerr.V("bucket", c.bucket),
			goerr.V("name", name))
	}

	return nil
}

// ReadText downloads the object stored as name
func (c *Client) ReadText(ctx context.Context, name string) (string, error) {
	r, err := c.client.Bucket(c.bucket).Object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return "", goerr.Wrap(err, "release note not found: "+name,
				goerr.T(types.ErrTagNotFound),
				goerr.V("bucket", c.bucket))
		}
		return "", goerr.Wrap(err, "failed to open object",
			goerr.V("bucket", c.bucket),
			goerr.V("name", name))
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read object",
			goerr.V("bucket", c.bucket),
			goerr.V("name", name))
	}

	return string(data), nil
}

// Close releases the underlying client
func (c *Client) Close() error {
	return c.client.Close()
}
