package cmd

import (
	"os"
	"strings"
	"testing"
)

func TestMigrateArgs(t *testing.T) {
	for _, args := range [][]string{{}, {"up"}, {"down"}} {
		if err := migrateCmd.Args(migrateCmd, args); err != nil {
			t.Fatalf("expected %v to be accepted, got %v", args, err)
		}
	}
	for _, args := range [][]string{{"sideways"}, {"up", "down"}} {
		if err := migrateCmd.Args(migrateCmd, args); err == nil {
			t.Fatalf("expected %v to be rejected", args)
		}
	}
}

func TestMigrateRequiresDSN(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MYSQL_DSN", "")

	err := migrateCmd.RunE(migrateCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "MYSQL_DSN") {
		t.Fatalf("expected missing MYSQL_DSN error, got %v", err)
	}
}

func TestMigrateRejectsMalformedDSN(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MYSQL_DSN", "not a dsn")

	err := migrateCmd.RunE(migrateCmd, []string{"up"})
	if err == nil || !strings.Contains(err.Error(), "parse MYSQL_DSN") {
		t.Fatalf("expected dsn parse error, got %v", err)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
