package interfaces

import "context"

// ArtifactStore persists release note documents by name
type ArtifactStore interface {
	// WriteText stores content under name, replacing any existing object
	WriteText(ctx context.Context, name, content string) error

	// ReadText returns the content stored under name
	ReadText(ctx context.Context, name string) (string, error)
}
