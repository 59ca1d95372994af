package services

import "errors"

var (
	// ErrDeleteFailed aborts a program save before anything was rebuilt; the
	// previously saved program is untouched.
	ErrDeleteFailed = errors.New("program delete failed")
	// ErrMissingTheme rejects a save that selects cards without any theme.
	ErrMissingTheme = errors.New("program needs at least one theme")
	// ErrPartialWrite reports that some per-day inserts failed. Successful
	// days are kept; retrying the whole save is the recovery path.
	ErrPartialWrite = errors.New("program partially written")
	// ErrRemoteWrite means a completion toggle reached the local tier but
	// not the remote store. The local state stands; surface a warning only.
	ErrRemoteWrite = errors.New("remote completion write failed")
	// ErrCardNotInProgram rejects a completion toggle for a card outside the
	// stage's saved program.
	ErrCardNotInProgram = errors.New("card is not part of the stage program")
	// ErrSessionNotFound is returned for unknown builder session ids.
	ErrSessionNotFound = errors.New("builder session not found")
)
