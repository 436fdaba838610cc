package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ComponentKey names the package that emitted an event.
const ComponentKey = "cmp"

// Component returns the global logger tagged with name. Events given a
// context through Ctx also carry its version_id and path.
func Component(name string) zerolog.Logger {
	return log.Logger.With().Str(ComponentKey, name).Logger().Hook(ContextHook{})
}
