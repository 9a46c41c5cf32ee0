// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

const (
	// SQL table names:
	userTable     = "cap_user"
	computerTable = "cap_computer"

	// SQL column names:
	userID           = userTable + ".id"
	userEmail        = userTable + ".email"
	userPasswordHash = userTable + ".password_hash"
	userRole         = userTable + ".role"
	computerSeq      = computerTable + ".seq"
	computerID       = computerTable + ".id"
	computerOS       = computerTable + ".os"
	computerCPU      = computerTable + ".cpu"
	computerRAM      = computerTable + ".ram"
	computerAvail    = computerTable + ".available"
	computerSSH      = computerTable + ".ssh"

	// Constraint names:
	userUniqueEmail = "cap_user_unique_email"

	// PostgreSQL error codes:
	uniqueViolation = "23505"
)

// computerColumns is the SELECT list matching scanComputer.
const computerColumns = computerID + ", " + computerOS + ", " +
	computerCPU + ", " + computerRAM + ", " + computerAvail + ", " +
	computerSSH
