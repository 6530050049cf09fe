package main

import (
	"flag"
	"log"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/config"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/model"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/database"

	"gorm.io/gorm"
)

type step struct {
	name     string
	sql      []string
	optional bool
}

var extensions = step{
	name:     "extensions",
	optional: true,
	sql: []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
}

var indexes = step{
	name:     "indexes",
	optional: true,
	sql: []string{
		`CREATE INDEX IF NOT EXISTS idx_reference_documents_tags ON reference_documents USING GIN (tags);`,
		`CREATE INDEX IF NOT EXISTS idx_lessons_content_status ON lessons (content_status);`,
	},
}

func run(db *gorm.DB, s step) {
	for _, stmt := range s.sql {
		if err := db.Exec(stmt).Error; err != nil {
			if !s.optional {
				log.Fatalf("Error: %s failed: %v", s.name, err)
			}
			log.Printf("Warn: %s statement failed: %v. Continuing...", s.name, err)
		}
	}
}

func main() {
	skipIndexes := flag.Bool("skip-indexes", false, "only create tables")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.IsProduction())
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Migrating: extensions")
	run(db, extensions)

	log.Println("Migrating: tables")
	if err := db.AutoMigrate(&model.ReferenceDocument{}, &model.Lesson{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	if !*skipIndexes {
		log.Println("Migrating: indexes")
		run(db, indexes)
	}

	log.Println("Database migration completed")
}
