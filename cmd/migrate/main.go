// Package main is the explicit schema-migration step for the
// vessel-inspection service. The server process never mutates the schema;
// deployments run this binary first.
//
// Usage:
//
//	migrate up               apply all pending migrations
//	migrate down             roll back the most recent migration
//	migrate version          print current version and dirty flag
//
// DATABASE_URL must be set. MIGRATIONS_SOURCE overrides the default
// "file://migrations".
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/database"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}
	source := os.Getenv("MIGRATIONS_SOURCE")
	if source == "" {
		source = "file://migrations"
	}

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		if err := database.RunMigrations(source, dbURL); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	case "down":
		if err := database.RollbackMigration(source, dbURL); err != nil {
			log.Fatalf("rollback failed: %v", err)
		}
	case "version":
		version, dirty, err := database.MigrationVersion(source, dbURL)
		if err != nil {
			log.Fatalf("could not read version: %v", err)
		}
		fmt.Printf("version=%d dirty=%v\n", version, dirty)
	default:
		log.Fatalf("unknown command %q (want up, down or version)", cmd)
	}
}
