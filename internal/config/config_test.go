package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DB_PATH", "DATABASE_URL", "SEED_PATH", "RABBITMQ_URL", "LOG_LEVEL", "STRICT_FUEL", "TRACK_STEPS"} {
		t.Setenv(k, "")
	}

	cfg, found, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if found {
		t.Fatal("expected no .env file to be found")
	}
	if cfg.Port != "8080" || cfg.DBDriver != DriverSQLite || cfg.DBPath != "data/app.db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.StrictFuel || cfg.TrackSteps != 10 || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DATABASE_URL", "STRICT_FUEL", "LOG_LEVEL", "TRACK_STEPS"} {
		t.Setenv(k, "")
		// godotenv never overrides variables that are already set, even empty.
		os.Unsetenv(k)
	}

	path := filepath.Join(t.TempDir(), ".env")
	body := "PORT=9090\nDB_DRIVER=POSTGRES\nDATABASE_URL=postgres://localhost/freight\nSTRICT_FUEL=true\nLOG_LEVEL=debug\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, found, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !found {
		t.Fatal("expected .env file to be found")
	}
	if cfg.Port != "9090" || cfg.DBDriver != DriverPostgres || !cfg.StrictFuel || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"postgres without url", Config{DBDriver: DriverPostgres, LogLevel: "info", TrackSteps: 1}},
		{"sqlite without path", Config{DBDriver: DriverSQLite, LogLevel: "info", TrackSteps: 1}},
		{"unknown driver", Config{DBDriver: "mysql", LogLevel: "info", TrackSteps: 1}},
		{"unknown level", Config{DBDriver: DriverSQLite, DBPath: "x.db", LogLevel: "loud", TrackSteps: 1}},
		{"no steps", Config{DBDriver: DriverSQLite, DBPath: "x.db", LogLevel: "info"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestGetBoolRejectsGarbage(t *testing.T) {
	t.Setenv("STRICT_FUEL", "maybe")
	if _, err := GetBool("STRICT_FUEL", false); err == nil {
		t.Fatal("expected parse error")
	}
}
