package model

import "time"

// GenerationRecord is the audit entry stored for every published release note
type GenerationRecord struct {
	ID                 string     `json:"id" firestore:"id"`
	BlobName           string     `json:"blob_name" firestore:"blob_name"`
	BuildType          string     `json:"build_type" firestore:"build_type"`
	CurrentBuildNumber string     `json:"current_build_number" firestore:"current_build_number"`
	Range              BuildRange `json:"range" firestore:"range"`
	ItemCount          int        `json:"item_count" firestore:"item_count"`
	SkippedKeys        []string   `json:"skipped_keys" firestore:"skipped_keys"`
	CreatedAt          time.Time  `json:"created_at" firestore:"created_at"`
}

// NewGenerationRecord builds the audit entry for a result
func NewGenerationRecord(result *GenerateResult, now time.Time) *GenerationRecord {
	skipped := make([]string, 0, len(result.SkippedKeys))
	for _, key := range result.SkippedKeys {
		skipped = append(skipped, string(key))
	}

	return &GenerationRecord{
		ID:                 result.ID,
		BlobName:           result.BlobName,
		BuildType:          result.Request.BuildType,
		CurrentBuildNumber: result.Request.CurrentBuildNumber,
		Range:              result.Range,
		ItemCount:          len(result.Note.Items),
		SkippedKeys:        skipped,
		CreatedAt:          now,
	}
}
