package xcontext

import (
	"context"

	"gorm.io/gorm"
)

type txState struct {
	tx   *gorm.DB
	done bool
}

type (
	txStateKey  struct{}
	nestedTxKey struct{}
)

// WithDBTransaction begins a transaction and returns a context whose DB() is
// that transaction. Nested calls reuse the outer transaction, only the
// outermost call commits or rollbacks.
func WithDBTransaction(ctx context.Context) context.Context {
	if state, ok := ctx.Value(txStateKey{}).(*txState); ok && !state.done {
		return context.WithValue(ctx, nestedTxKey{}, true)
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok || db == nil {
		return ctx
	}

	// A failed Begin is kept in the state, the caller hits the error on its
	// first query.
	tx := db.WithContext(ctx).Begin()
	return context.WithValue(ctx, txStateKey{}, &txState{tx: tx})
}

// WithCommitDBTransaction commits the transaction started by
// WithDBTransaction. It returns the commit error if any.
func WithCommitDBTransaction(ctx context.Context) error {
	if isNested(ctx) {
		return nil
	}

	state, ok := ctx.Value(txStateKey{}).(*txState)
	if !ok || state.done {
		return nil
	}

	state.done = true
	return state.tx.Commit().Error
}

// WithRollbackDBTransaction rollbacks the transaction if it was not committed
// yet. It is designed to be deferred right after WithDBTransaction.
func WithRollbackDBTransaction(ctx context.Context) {
	if isNested(ctx) {
		return
	}

	state, ok := ctx.Value(txStateKey{}).(*txState)
	if !ok || state.done {
		return
	}

	state.done = true
	state.tx.Rollback()
}

func currentTx(ctx context.Context) *gorm.DB {
	state, ok := ctx.Value(txStateKey{}).(*txState)
	if !ok || state.done {
		return nil
	}

	return state.tx
}

// InTransaction reports whether ctx carries an opened transaction.
func InTransaction(ctx context.Context) bool {
	state, ok := ctx.Value(txStateKey{}).(*txState)
	return ok && !state.done
}

func isNested(ctx context.Context) bool {
	nested, _ := ctx.Value(nestedTxKey{}).(bool)
	return nested
}
