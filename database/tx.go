package database

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxManager runs a function inside a database transaction. Stores participate
// by resolving their database handle through FromContext, so paired writes to
// multiple aggregates commit or roll back as one unit.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// GormTxManager implements TxManager on a GORM connection.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a transaction manager for the given connection.
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// Do runs fn inside a transaction. The transaction handle is carried in the
// context; nested calls reuse the outer transaction.
func (m *GormTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// FromContext returns the transaction handle carried in ctx, or fallback when
// no transaction is active.
func FromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return fallback
}

func txFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	if !ok {
		return nil
	}
	return tx
}
