package doctor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/lintlens/internal/core/config"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func withEnv(t *testing.T, env map[string]string) {
	t.Helper()
	orig := lookupEnvFunc
	t.Cleanup(func() { lookupEnvFunc = orig })

	lookupEnvFunc = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestSummary(t *testing.T) {
	results := []Result{
		{Name: "a", Items: []CheckItem{{Status: StatusPass}, {Status: StatusWarn}}},
		{Name: "b", Items: []CheckItem{{Status: StatusFail}, {Status: StatusPass}}},
	}

	passed, warned, failed := Summary(results)
	assert.Equal(t, 2, passed)
	assert.Equal(t, 1, warned)
	assert.Equal(t, 1, failed)
}

func TestConfigCheck_Defaults(t *testing.T) {
	cfg := config.DefaultConfig()
	result := NewConfigCheck(&cfg, filepath.Join(t.TempDir(), "config.yaml")).Run(context.Background())

	assert.Equal(t, "Configuration", result.Name)
	require.Len(t, result.Items, 2)
	assert.Equal(t, StatusWarn, result.Items[0].Status)
	assert.Contains(t, result.Items[0].Detail, "not found")
	assert.Equal(t, StatusPass, result.Items[1].Status)
}

func TestConfigCheck_FieldErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("viewer:\n  theme: neon\n"), 0o644))

	cfg := config.DefaultConfig()
	cfg.Viewer.Theme = "neon"
	result := NewConfigCheck(&cfg, path).Run(context.Background())

	require.Len(t, result.Items, 2)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, "viewer.theme", result.Items[1].Label)
	assert.Equal(t, StatusFail, result.Items[1].Status)
}

func TestAPICheck(t *testing.T) {
	cfg := config.DefaultConfig().API

	tests := []struct {
		name      string
		env       map[string]string
		ping      error
		wantToken Status
		wantReach Status
	}{
		{name: "healthy", env: map[string]string{cfg.TokenEnv: "secret"}, wantToken: StatusPass, wantReach: StatusPass},
		{name: "missing token", env: map[string]string{}, wantToken: StatusWarn, wantReach: StatusPass},
		{name: "unreachable", env: map[string]string{cfg.TokenEnv: "secret"}, ping: errors.New("connection refused"), wantToken: StatusPass, wantReach: StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withEnv(t, tt.env)

			check := NewAPICheck(cfg, pingFunc(func(ctx context.Context) error {
				_, ok := ctx.Deadline()
				assert.True(t, ok)
				return tt.ping
			}))
			result := check.Run(context.Background())

			require.Len(t, result.Items, 2)
			assert.Equal(t, "token", result.Items[0].Label)
			assert.Equal(t, tt.wantToken, result.Items[0].Status)
			assert.Equal(t, cfg.BaseURL, result.Items[1].Label)
			assert.Equal(t, tt.wantReach, result.Items[1].Status)
		})
	}
}

func TestRunAll(t *testing.T) {
	withEnv(t, map[string]string{})
	cfg := config.DefaultConfig()

	results := RunAll(context.Background(), []Check{
		NewConfigCheck(&cfg, ""),
		NewAPICheck(cfg.API, pingFunc(func(context.Context) error { return nil })),
	})

	require.Len(t, results, 2)
	assert.Equal(t, "Configuration", results[0].Name)
	assert.Equal(t, "Review API", results[1].Name)
}
