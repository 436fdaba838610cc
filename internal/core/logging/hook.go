package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts version_id and path from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if id := GetVersionID(ctx); id != 0 {
		e.Int("version_id", id)
	}

	if p := GetPath(ctx); p != "" {
		e.Str("path", p)
	}
}
