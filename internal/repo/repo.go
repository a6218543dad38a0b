package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormRepo struct {
	DB *gorm.DB
}

const txAttempts = 3

// inTx runs fn as one atomic transaction, retrying a bounded number of
// times when the store reports a concurrent-write conflict. The caller
// sees either full success or the last failure; no partial state.
func (r *GormRepo) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < txAttempts; attempt++ {
		err = r.DB.WithContext(ctx).Transaction(fn)
		if err == nil || !IsConflict(err) {
			return err
		}
		time.Sleep(time.Duration(attempt+1) * 25 * time.Millisecond)
	}
	return err
}

// IsConflict reports whether err looks like a transient write conflict
// that a retry could resolve, as opposed to a permanent failure.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "could not serialize") ||
		strings.Contains(msg, "serialization failure") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}

// lockForUpdate adds a FOR UPDATE clause on dialects that support it.
// SQLite serializes writers at the database level and rejects the
// clause as a syntax error, so it is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
