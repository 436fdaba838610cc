package doctor

import (
	"context"
	"errors"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/lintlens/internal/core/config"
)

// ConfigCheck reports on the config file and runs deep validation.
type ConfigCheck struct {
	cfg  *config.Config
	path string
}

// NewConfigCheck creates a new config check.
func NewConfigCheck(cfg *config.Config, path string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, path: path}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	switch _, err := os.Stat(c.path); {
	case c.path == "":
		result.Items = append(result.Items, CheckItem{Label: "config file", Status: StatusWarn, Detail: "no path set, using defaults"})
	case os.IsNotExist(err):
		result.Items = append(result.Items, CheckItem{Label: "config file", Status: StatusWarn, Detail: "not found, using defaults"})
	default:
		result.Items = append(result.Items, CheckItem{Label: "config file", Status: StatusPass, Detail: c.path})
	}

	err := c.cfg.ValidateDeep(c.path)
	if err == nil {
		result.Items = append(result.Items, CheckItem{Label: "validation", Status: StatusPass})
		return result
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		result.Items = append(result.Items, CheckItem{Label: "validation", Status: StatusFail, Detail: err.Error()})
		return result
	}
	for _, fe := range fieldErrs {
		result.Items = append(result.Items, CheckItem{Label: fe.Field, Status: StatusFail, Detail: fe.Err.Error()})
	}

	return result
}
