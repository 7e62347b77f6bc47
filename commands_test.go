package hotresque_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestStatic_OnlyListCommands ensures production code only issues the list commands
// Resque-compatible stores are expected to serve: RPUSH, LPOP, BLPOP, LLEN and DEL.
//
// This is a static scan over non-test .go files to catch accidental regressions.
func TestStatic_OnlyListCommands(t *testing.T) {
	allowed := map[string]bool{
		"RPush": true,
		"LPop":  true,
		"BLPop": true,
		"LLen":  true,
		"Del":   true,
	}
	call := regexp.MustCompile(`\.cmd\.(\w+)\(`)

	entries, err := os.ReadDir(".")
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".go") {
			continue
		}
		if strings.HasSuffix(name, "_test.go") {
			continue
		}

		b, err := os.ReadFile(name)
		require.NoError(t, err)

		for _, m := range call.FindAllSubmatch(b, -1) {
			method := string(m[1])
			if !allowed[method] {
				t.Fatalf("%s calls %s; only RPUSH/LPOP/BLPOP/LLEN/DEL are allowed", filepath.Base(name), method)
			}
			seen[method] = true
		}
	}
	require.Len(t, seen, len(allowed))
}
