// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package postgres

import (
	"context"
	"fmt"
)

// TxManager runs callbacks inside a single database transaction.
type TxManager struct {
	db DB
}

// NewTxManager creates a new TxManager.
func NewTxManager(db DB) *TxManager {
	return &TxManager{db: db}
}

// RunInTx executes fn within a Read Committed transaction.
//
// The transaction commits when fn returns nil and rolls back otherwise. A
// panic inside fn rolls back and re-panics. Calling RunInTx with a context
// that already carries a transaction reuses it, so services can compose.
func (manager *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if InTx(ctx) {
		return fn(ctx)
	}

	tx, err := manager.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres_begin_tx_failed: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("postgres_rollback_failed: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres_commit_tx_failed: %w", err)
	}

	return nil
}
