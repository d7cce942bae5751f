package model

import "strings"

const (
	emptyNoteBody = "No Release Notes for this build"
	noteHeader    = "Included in this release are the following items:"

	// LineSeparator joins document lines regardless of the host platform.
	LineSeparator = "\n"
)

// ReleaseNote is an ordered release note document
type ReleaseNote struct {
	Title  string
	Header string
	Items  []string
}

// NewEmptyReleaseNote returns the fixed document used when there is nothing to compare.
func NewEmptyReleaseNote(currentBuildNumber string) *ReleaseNote {
	return &ReleaseNote{
		Title:  "Release Notes for " + currentBuildNumber,
		Header: emptyNoteBody,
	}
}

// NewReleaseNote returns a document with title and header and no items yet.
func NewReleaseNote(currentBuildNumber, fromBuildNumber string) *ReleaseNote {
	return &ReleaseNote{
		Title:  "Version " + currentBuildNumber + " Release Notes (compared with " + fromBuildNumber + ")",
		Header: noteHeader,
	}
}

// Add appends an item line
func (n *ReleaseNote) Add(line string) {
	n.Items = append(n.Items, line)
}

// Lines returns all lines of the document in order
func (n *ReleaseNote) Lines() []string {
	lines := make([]string, 0, len(n.Items)+2)
	lines = append(lines, n.Title, n.Header)
	return append(lines, n.Items...)
}

// String renders the document
func (n *ReleaseNote) String() string {
	return strings.Join(n.Lines(), LineSeparator)
}
