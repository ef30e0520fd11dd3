// ABOUTME: Tests for the main rheap package, verifying project structure and imports
package rheap_test

import (
	"testing"

	"github.com/prateek/rheap"
)

func TestProjectStructure(t *testing.T) {
	if rheap.Version == "" {
		t.Error("Version constant should not be empty")
	}
	expectedPrefix := "0."
	if len(rheap.Version) < len(expectedPrefix) || rheap.Version[:len(expectedPrefix)] != expectedPrefix {
		t.Errorf("Version should start with %q, got %q", expectedPrefix, rheap.Version)
	}
}
