package db

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/competence-backend/internal/platform/logger"
)

func TestNormalizeDriver(t *testing.T) {
	cases := map[string]string{
		"":         DriverPostgres,
		"Postgres": DriverPostgres,
		" SQLite ": DriverSQLite,
		"sqlite":   DriverSQLite,
		"mysql":    "mysql",
	}
	for in, want := range cases {
		if got := NormalizeDriver(in); got != want {
			t.Fatalf("NormalizeDriver(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDSNUsesSQLitePathRegardlessOfCase(t *testing.T) {
	cfg := Config{Driver: "SQLite", SQLitePath: "competence.db", PostgresHost: "db"}
	if got := cfg.dsn(); got != "competence.db" {
		t.Fatalf("dsn = %q", got)
	}
}

func TestDSNEscapesPostgresCredentials(t *testing.T) {
	cfg := Config{
		Driver:           DriverPostgres,
		PostgresHost:     "db.internal",
		PostgresPort:     "5432",
		PostgresUser:     "app@corp",
		PostgresPassword: "p:ss/w@rd?#",
		PostgresName:     "competence",
	}
	u, err := url.Parse(cfg.dsn())
	if err != nil {
		t.Fatalf("parse dsn: %v", err)
	}
	pass, _ := u.User.Password()
	if u.User.Username() != "app@corp" || pass != "p:ss/w@rd?#" {
		t.Fatalf("credentials not preserved: user=%q pass=%q", u.User.Username(), pass)
	}
	if u.Host != "db.internal:5432" || u.Path != "/competence" || u.Query().Get("sslmode") != "disable" {
		t.Fatalf("unexpected dsn parts: host=%q path=%q query=%q", u.Host, u.Path, u.RawQuery)
	}
}

func TestDSNPrefersExplicitValue(t *testing.T) {
	cfg := Config{DSN: "postgres://explicit", PostgresHost: "ignored"}
	if got := cfg.dsn(); got != "postgres://explicit" {
		t.Fatalf("dsn = %q", got)
	}
}

func TestOpenAcceptsMixedCaseSQLiteDriver(t *testing.T) {
	svc, err := Open(Config{
		Driver:       "SQLite",
		SQLitePath:   fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		MaxOpenConns: 1,
	}, logger.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })

	if !svc.DB().Migrator().HasTable("competence") {
		t.Fatal("expected competence table migrated")
	}
}
