package model

// AutoBuildNumber requests automatic selection of the baseline build.
const AutoBuildNumber = "Auto"

// BuildReference identifies one CI build
type BuildReference struct {
	ID           int
	Number       string
	PipelineID   int
	SourceBranch string
}

// ChangeRecord is one entry of the diff between two builds
type ChangeRecord struct {
	CommitID string
}

// CommitRecord holds the commit metadata needed to harvest issue keys
type CommitRecord struct {
	ID      string
	Message string
	URL     string
}

// BuildRange is the resolved pair of builds to compare.
type BuildRange struct {
	FromBuildID     int    `json:"from_build_id" firestore:"from_build_id"`
	ToBuildID       int    `json:"to_build_id" firestore:"to_build_id"`
	FromBuildNumber string `json:"from_build_number" firestore:"from_build_number"`
	ToBuildNumber   string `json:"to_build_number" firestore:"to_build_number"`
}

// Empty reports whether the range has no changes to diff, which happens when
// the baseline and target resolve to the same build.
func (r BuildRange) Empty() bool {
	return r.FromBuildID == r.ToBuildID
}
