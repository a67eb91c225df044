// Package db wires gorm.io/gorm to Postgres and exposes the repository the
// gateway (read APIs) and loader (bulk-commit, dedup lookups) operate on.
// Generalized from the teacher's repository.JobRepository.
package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a Postgres connection. It does not migrate the schema;
// callers run JobRepository.Migrate for the core jobs/job_skills tables.
func Connect(databaseURL string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}
