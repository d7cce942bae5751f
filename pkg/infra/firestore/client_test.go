package firestore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/relnote/pkg/domain/model"
	"github.com/m-mizutani/relnote/pkg/domain/types"
	"github.com/m-mizutani/relnote/pkg/infra/firestore"
)

func TestNew_RequiresProject(t *testing.T) {
	_, err := firestore.New(context.Background(), "", "")
	gt.Error(t, err)
}

func TestClient_Generation(t *testing.T) {
	// Runs against a real project or the emulator (FIRESTORE_EMULATOR_HOST)
	projectID := os.Getenv("TEST_RELNOTE_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_RELNOTE_FIRESTORE_PROJECT_ID is not set")
	}
	databaseID := os.Getenv("TEST_RELNOTE_FIRESTORE_DATABASE_ID")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := firestore.New(ctx, projectID, databaseID)
	gt.NoError(t, err)
	defer func() {
		_ = client.Close() // Error ignored in test cleanup
	}()

	record := &model.GenerationRecord{
		ID:                 uuid.NewString(),
		BlobName:           "nightly_42.txt",
		BuildType:          "nightly",
		CurrentBuildNumber: "42",
		Range:              model.BuildRange{FromBuildID: 95, ToBuildID: 100, FromBuildNumber: "41", ToBuildNumber: "42"},
		ItemCount:          1,
		SkippedKeys:        []string{"PROJ-8"},
		CreatedAt:          time.Now().UTC().Truncate(time.Millisecond),
	}

	gt.NoError(t, client.PutGeneration(ctx, record))

	got, err := client.GetGeneration(ctx, record.ID)
	gt.NoError(t, err)
	gt.Equal(t, got.BlobName, record.BlobName)
	gt.Equal(t, got.Range, record.Range)
	gt.Equal(t, got.SkippedKeys, record.SkippedKeys)

	_, err = client.GetGeneration(ctx, uuid.NewString())
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagNotFound))
}
