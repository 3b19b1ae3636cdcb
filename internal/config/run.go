package config

import (
	"time"

	"github.com/google/uuid"
)

// RunContext is the explicit state of one invocation: who, when and how.
// Now is captured once and every age in the run is measured against it.
type RunContext struct {
	ID     string
	Now    time.Time
	Config *Config
}

func NewRunContext(cfg *Config, now time.Time) *RunContext {
	return &RunContext{
		ID:     uuid.NewString(),
		Now:    now,
		Config: cfg,
	}
}
