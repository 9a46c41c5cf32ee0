// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"database/sql"

	"github.com/rubenv/sql-migrate"
)

// This file maintains the database migration code.  See
// https://github.com/rubenv/sql-migrate for details of what goes in
// here.  This runs "outside" the normal store flow, either at initial
// startup or from an external tool.

var migrationSource = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "1-initial",
			Up: []string{
				`CREATE TABLE ` + userTable + `(
					id UUID PRIMARY KEY,
					email TEXT NOT NULL,
					password_hash BYTEA NOT NULL,
					role TEXT NOT NULL,
					CONSTRAINT ` + userUniqueEmail + ` UNIQUE(email)
				)`,
				`CREATE TABLE ` + computerTable + `(
					seq BIGSERIAL NOT NULL UNIQUE,
					id UUID PRIMARY KEY,
					os TEXT NOT NULL,
					cpu TEXT NOT NULL,
					ram INTEGER NOT NULL,
					available BOOLEAN NOT NULL DEFAULT TRUE,
					ssh TEXT NOT NULL
				)`,
			},
			Down: []string{
				`DROP TABLE ` + computerTable,
				`DROP TABLE ` + userTable,
			},
		},
	},
}

// Upgrade upgrades a database to the latest database schema version.
func Upgrade(db *sql.DB) error {
	_, err := migrate.Exec(db, "postgres", migrationSource, migrate.Up)
	return err
}

// Drop clears a database by running all of the migrations in reverse,
// ultimately resulting in dropping all of the tables.
func Drop(db *sql.DB) error {
	_, err := migrate.Exec(db, "postgres", migrationSource, migrate.Down)
	return err
}
