// Package iotesting provides shared test utilities: throwaway starmap
// datasets, route corpora and configs that never touch the user's home.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"strings"
	"testing"

	"github.com/evefrontier/fixgen/pkg/config"
)

// GetTestConfig returns a configuration suitable for tests. HomeDir
// points to a temporary directory and logs go to stderr, so tests never
// write into ~/.config/fixgen or ~/.local/share/fixgen.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    cfg := iotesting.GetTestConfig(t)
//	    cfg.Update([]config.Option{config.OptSourcePath(path)})
//	}
func GetTestConfig(t *testing.T) *config.Config {
	t.Helper()
	ClearEnv(t)

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptLogDestination("stderr"),
		config.OptLogLevel("error"),
		config.OptExtractWithProgress(false),
	})
	return cfg
}

// ClearEnv unsets every FIXGEN_* variable for the duration of the test,
// so settings of the developer's shell do not leak into tests.
func ClearEnv(t *testing.T) {
	t.Helper()
	for _, env := range os.Environ() {
		key, _, _ := strings.Cut(env, "=")
		if !strings.HasPrefix(key, "FIXGEN_") {
			continue
		}
		// Setenv registers the restore on cleanup.
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("Failed to unset %s: %v", key, err)
		}
	}
}
