// Package runtimeenv decides once, at startup, whether the process is on a
// serverless / read-only filesystem. The answer relocates the database file
// and suppresses file logging; it is computed in config loading and passed
// around explicitly, never re-probed per request.
package runtimeenv

import (
	"os"
	"path/filepath"
	"strings"
)

// IsServerless checks, in order: the Vercel platform marker, the Lambda
// function-name variable, known read-only path prefixes of baseDir, and
// finally an actual write-and-delete probe in baseDir. Any filesystem error
// during the probe counts as read-only.
func IsServerless(baseDir string) bool {
	if strings.EqualFold(os.Getenv("VERCEL"), "1") {
		return true
	}
	if _, ok := os.LookupEnv("AWS_LAMBDA_FUNCTION_NAME"); ok {
		return true
	}

	if strings.Contains(baseDir, "/var/task") || strings.Contains(baseDir, "/var/runtime") {
		return true
	}

	probe := filepath.Join(baseDir, ".write_test")
	f, err := os.Create(probe)
	if err != nil {
		return true
	}
	if _, err := f.WriteString("test"); err != nil {
		f.Close()
		os.Remove(probe)
		return true
	}
	if err := f.Close(); err != nil {
		os.Remove(probe)
		return true
	}
	if err := os.Remove(probe); err != nil {
		return true
	}
	return false
}
