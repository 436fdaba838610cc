package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/term"

	"github.com/colonyops/lintlens/internal/api"
	"github.com/colonyops/lintlens/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	Plain      bool

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "lintlens", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/lintlens/lintlens.log
// On Linux: $XDG_STATE_HOME/lintlens/lintlens.log (defaults to ~/.local/state/lintlens/lintlens.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "lintlens", "lintlens.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "lintlens", "lintlens.log")
	}

	return filepath.Join(home, ".local", "state", "lintlens", "lintlens.log")
}

// Interactive reports whether the viewer can run: plain output was not
// requested and both stdin and stdout are terminals.
func (f *Flags) Interactive() bool {
	if f.Plain {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

// ColorOutput reports whether command output may carry ANSI colors.
func (f *Flags) ColorOutput() bool {
	return !f.Plain && term.IsTerminal(int(os.Stdout.Fd()))
}

// Client returns a review API client for the loaded config.
func (f *Flags) Client() *api.Client {
	cfg := f.Config.API
	return api.New(cfg.BaseURL,
		api.WithVersion(cfg.Version),
		api.WithToken(f.Config.Token()),
		api.WithTimeout(cfg.Timeout),
	)
}
