// Package audit keeps a journal of the admin actions that change the
// tutorial library: imports, failed imports, deletions and seeding.
package audit

import "time"

// Action describes what was done.
type Action string

const (
	ActionImported     Action = "tutorial_imported"
	ActionImportFailed Action = "import_failed"
	ActionDeleted      Action = "tutorial_deleted"
	ActionSeeded       Action = "tutorial_seeded"
)

// Actors that are not an authenticated admin user.
const (
	ActorCLI    = "cli"
	ActorSystem = "system"
)

// Entry is a single audit trail record.
type Entry struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Actor      string    `json:"actor"`
	Action     Action    `json:"action"`
	TutorialID string    `json:"tutorialId,omitempty"`
	GitHubURL  string    `json:"githubUrl,omitempty"`
	Summary    string    `json:"summary"`
	// Warnings are the per-file errors of a partially successful folder import.
	Warnings []string `json:"warnings,omitempty"`
}
