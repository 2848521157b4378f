package database

import (
	"context"
	"fmt"
)

// WithTx 在單一交易內執行 fn；fn 回傳錯誤或 panic 時回滾，否則提交
func WithTx(ctx context.Context, db DB, fn func(q Querier) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if cerr := tx.Commit(ctx); cerr != nil {
			err = fmt.Errorf("commit transaction: %w", cerr)
		}
	}()

	return fn(tx)
}
