package doctor

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/colonyops/lintlens/internal/core/config"
)

// Pinger reports whether the review API answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// pingTimeout bounds the reachability probe independently of api.timeout.
const pingTimeout = 5 * time.Second

// lookupEnvFunc is the function used to read the token variable.
// Package-level variable to allow test overrides.
var lookupEnvFunc = os.LookupEnv

// APICheck verifies the token variable and that the API is reachable.
type APICheck struct {
	cfg    config.APIConfig
	pinger Pinger
}

// NewAPICheck creates a new API check.
func NewAPICheck(cfg config.APIConfig, pinger Pinger) *APICheck {
	return &APICheck{cfg: cfg, pinger: pinger}
}

func (c *APICheck) Name() string {
	return "Review API"
}

func (c *APICheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	switch {
	case c.cfg.TokenEnv == "":
		result.Items = append(result.Items, CheckItem{Label: "token", Status: StatusWarn, Detail: "api.token_env is empty, requests are anonymous"})
	default:
		if v, ok := lookupEnvFunc(c.cfg.TokenEnv); ok && v != "" {
			result.Items = append(result.Items, CheckItem{Label: "token", Status: StatusPass, Detail: "$" + c.cfg.TokenEnv})
		} else {
			result.Items = append(result.Items, CheckItem{Label: "token", Status: StatusWarn, Detail: fmt.Sprintf("$%s is not set (required for fetch)", c.cfg.TokenEnv)})
		}
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := c.pinger.Ping(ctx); err != nil {
		result.Items = append(result.Items, CheckItem{Label: c.cfg.BaseURL, Status: StatusFail, Detail: err.Error()})
	} else {
		result.Items = append(result.Items, CheckItem{Label: c.cfg.BaseURL, Status: StatusPass, Detail: "reachable"})
	}

	return result
}
