// Package repository contains the sqlx data access layer. Every
// repository is constructed over a *sqlx.DB and exposes WithTx so a
// service can run several repositories inside one transaction — the
// lifecycle engine's side effects always join the caller's transaction.
package repository

import (
	"strings"

	"github.com/jmoiron/sqlx"
)

// ext is the query surface shared by *sqlx.DB and *sqlx.Tx.
type ext interface {
	sqlx.Ext
}

// isUniqueViolation detects unique constraint errors for both sqlite and
// postgres without importing driver-specific error types.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: UNIQUE") ||
		strings.Contains(msg, "duplicate key value")
}
