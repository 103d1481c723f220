// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the primary keys used by every Blenda table.

Version 7 identifiers sort by creation time, which keeps B-tree inserts local
in PostgreSQL.
*/
package uuid

import "github.com/google/uuid"

// New generates a UUIDv7 string. It panics only if the system entropy
// source fails, which is unrecoverable.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
