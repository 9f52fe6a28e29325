package migrations_test

import (
	"io/fs"
	"regexp"
	"strings"
	"testing"

	"github.com/vibast-solutions/ms-go-menu/migrations"

	"github.com/go-sql-driver/mysql"
)

func TestEveryUpHasADown(t *testing.T) {
	ups, err := fs.Glob(migrations.FS, "*.up.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(ups) == 0 {
		t.Fatalf("expected embedded migrations")
	}
	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		if _, err = fs.Stat(migrations.FS, down); err != nil {
			t.Fatalf("missing %s for %s: %v", down, up, err)
		}
	}
}

func TestEmailComparesCaseSensitively(t *testing.T) {
	schema, err := fs.ReadFile(migrations.FS, "000001_init.up.sql")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}

	// The application never lowercases emails, so the column must not fold case either.
	email := regexp.MustCompile(`(?m)^\s*email\s+VARCHAR\(255\)[^,\n]*,`).FindString(string(schema))
	if email == "" {
		t.Fatalf("email column not found in schema")
	}
	if !strings.Contains(email, "COLLATE utf8mb4_bin") {
		t.Fatalf("expected binary collation on users.email, got %q", strings.TrimSpace(email))
	}
	if !strings.Contains(string(schema), "UNIQUE KEY uq_users_email (email)") {
		t.Fatalf("expected unique email key")
	}
}

func TestDSNEnablesMultiStatements(t *testing.T) {
	dsn, err := migrations.DSN("menu:secret@tcp(localhost:3306)/menu")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("formatted dsn does not parse: %v", err)
	}
	if !cfg.MultiStatements || !cfg.ParseTime {
		t.Fatalf("expected multiStatements and parseTime, got %q", dsn)
	}
	if cfg.User != "menu" || cfg.Passwd != "secret" || cfg.DBName != "menu" || cfg.Addr != "localhost:3306" {
		t.Fatalf("connection details were not preserved: %q", dsn)
	}

	if _, err = migrations.DSN("not a dsn"); err == nil {
		t.Fatalf("expected invalid dsn to be rejected")
	}
}

func TestRunRejectsUnknownDirection(t *testing.T) {
	if err := migrations.Run(nil, "sideways"); err == nil {
		t.Fatalf("expected unknown direction to be rejected")
	}
}
