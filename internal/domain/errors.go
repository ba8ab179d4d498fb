package domain

import "errors"

var (
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrInvalidQuiz is returned when a loaded quiz definition fails validation.
	ErrInvalidQuiz = errors.New("invalid quiz definition")
	// ErrInvalidCatalog is returned when loaded course or college records fail validation.
	ErrInvalidCatalog = errors.New("invalid catalog entry")
	// ErrInvalidOption indicates a selected option index is outside the current question.
	ErrInvalidOption = errors.New("option index out of range")
	// ErrAdvancePending rejects a second selection while the auto-advance for the same question is armed.
	ErrAdvancePending = errors.New("advance already pending for current question")
	// ErrUnknownStream indicates a stream selector outside the catalog.
	ErrUnknownStream = errors.New("unknown stream")
	// ErrKeyNotFound is returned by key-value stores on a miss.
	ErrKeyNotFound = errors.New("key not found")
)
