package core

import "github.com/google/uuid"

// NewSessionID returns a fresh identifier for one bootstrap run. Watch mode
// starts a new session on every reload so log lines can be told apart.
func NewSessionID() string {
	return uuid.NewString()
}
