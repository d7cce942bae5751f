package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relnote/pkg/domain/model"
	"github.com/m-mizutani/relnote/pkg/domain/types"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const generationCollection = "generations"

// DefaultDatabaseID selects the project's default Firestore database
const DefaultDatabaseID = firestore.DefaultDatabaseID

// Client stores generation records in Firestore
type Client struct {
	client *firestore.Client
}

// New creates a new Firestore client. An empty databaseID selects the default database.
func New(ctx context.Context, projectID, databaseID string, opts ...option.ClientOption) (*Client, error) {
	if projectID == "" {
		return nil, goerr.New("Firestore project ID is required")
	}
	if databaseID == "" {
		databaseID = DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore client",
			goerr.V("project_id", projectID),
			goerr.V("database_id", databaseID))
	}

	return &Client{client: client}, nil
}

// PutGeneration stores a record under its ID
func (c *Client) PutGeneration(ctx context.Context, record *model.GenerationRecord) error {
	if _, err := c.client.Collection(generationCollection).Doc(record.ID).Set(ctx, record); err != nil {
		return goerr.Wrap(err, "failed to save generation record", goerr.V("id", record.ID))
	}
	return nil
}

// GetGeneration loads a record by ID
func (c *Client) GetGeneration(ctx context.Context, id string) (*model.GenerationRecord, error) {
	doc, err := c.client.Collection(generationCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(err, "generation not found: "+id, goerr.T(types.ErrTagNotFound))
		}
		return nil, goerr.Wrap(err, "failed to get generation record", goerr.V("id", id))
	}

	var record model.GenerationRecord
	if err := doc.DataTo(&record); err != nil {
		return nil, goerr.Wrap(err, "failed to decode generation record", goerr.V("id", id))
	}
	return &record, nil
}

// Close releases the underlying client
func (c *Client) Close() error {
	return c.client.Close()
}
