package config

import (
	"os"
	"strings"
)

// DBConfig holds the database driver and connection settings.
type DBConfig struct {
	Driver     string
	ConnString string
}

// GetDBConfig returns the database configuration based on environment
// variables. The default is a local SQLite file, matching how the catalog
// is used in development; set CATALOG_DB_DRIVER=postgres for a server
// deployment.
func GetDBConfig() DBConfig {
	driver := strings.ToLower(os.Getenv("CATALOG_DB_DRIVER"))
	switch driver {
	case "postgres", "postgresql", "pq":
		return DBConfig{
			Driver:     "postgres",
			ConnString: getConnString("postgres://localhost:5432/catalog?sslmode=disable"),
		}
	case "sqlite", "":
		return DBConfig{
			Driver:     "sqlite",
			ConnString: getConnString("catalog.db"),
		}
	default:
		// Unknown driver names fall back to sqlite
		return DBConfig{
			Driver:     "sqlite",
			ConnString: getConnString("catalog.db"),
		}
	}
}

// GetSnapshotPath returns the default snapshot file for the bulk loader.
func GetSnapshotPath() string {
	if path := os.Getenv("CATALOG_SNAPSHOT"); path != "" {
		return path
	}
	return "data/snapshot.json"
}

func getConnString(fallback string) string {
	if conn := os.Getenv("CATALOG_DB_CONN"); conn != "" {
		return conn
	}
	return fallback
}
