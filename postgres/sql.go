// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

// This file contains generic support code for database/sql.

import (
	"database/sql"

	"github.com/lib/pq"
)

// scanRows runs f once for each row in rows.  If f returns an error,
// stops and returns that error.  Always closes rows.
func scanRows(rows *sql.Rows, f func() error) (err error) {
	var done bool
	defer func() {
		if !done {
			err2 := rows.Close()
			if err == nil {
				err = err2
			}
		}
	}()

	for rows.Next() {
		err = f()
		if err != nil {
			return
		}
	}
	done = true
	err = rows.Err()
	return
}

// isUniqueViolation returns true if err is a PostgreSQL unique
// constraint violation of the named constraint.
func isUniqueViolation(err error, constraint string) bool {
	pqError, isPQ := err.(*pq.Error)
	if !isPQ {
		return false
	}
	if pqError.Code != uniqueViolation {
		return false
	}
	return pqError.Constraint == constraint
}
