package tutorials

import "errors"

var (
	// ErrDuplicateURL is returned when a tutorial with the same GitHub URL
	// already exists.
	ErrDuplicateURL = errors.New("a tutorial from this GitHub URL already exists")

	// ErrDuplicateTutorial is returned when a folder import would repeat the
	// title and author of an existing tutorial.
	ErrDuplicateTutorial = errors.New("a tutorial with this title and author already exists")

	ErrNotFound  = errors.New("tutorial not found")
	ErrInvalidID = errors.New("invalid tutorial id")
)
