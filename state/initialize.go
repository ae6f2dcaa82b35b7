package state

import (
	"os"
	"time"

	"github.com/google/uuid"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:   time.Now(),
		Session: newSessionID(),
		Out:     os.Stdout,
	}
}

// newSessionID returns time ordered identifier so stored sessions sort by
// creation time.
func newSessionID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
