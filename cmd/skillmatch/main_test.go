package main

import (
	"bytes"
	"testing"
)

// execute runs the root command in-process with flag state and the
// environment reset so tests never reach a real database or redis.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	configPath, verbose, jsonOutput = "", false, false
	matchSkills, matchResolve = "", false
	seedFile, servePort, validateSchema = "", 0, ""

	for _, key := range []string{"DATABASE_URL", "SKILLMATCH_DATABASE_URL", "REDIS_URL", "SKILLMATCH_REDIS_URL", "SKILLMATCH_CATALOG_PATH"} {
		t.Setenv(key, "")
	}
	t.Setenv("SKILLMATCH_LOG_LEVEL", "error")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
