// Package db provides gorm transaction propagation through context.
package db

import (
	"context"

	"gorm.io/gorm"
)

// txKey is the context key carrying the active transaction.
type txKey struct{}

// TransactionManager starts transactions and threads them through context so
// that every repository call inside the closure joins the same unit of work.
// Multi-aggregate writes (batch settlement, rating plus reputation) depend on
// this for their all-or-nothing guarantee.
type TransactionManager struct {
	db *gorm.DB
}

// NewTransactionManager creates a new TransactionManager.
func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction executes fn within a database transaction. An error from fn
// rolls everything back; otherwise the transaction commits.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// FromContext returns the transaction carried by ctx, or fallback bound to
// ctx when the caller is not inside a unit of work. Repositories route every
// query through this so they transparently join an ambient transaction.
func FromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
