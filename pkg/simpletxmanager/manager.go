// Package simpletxmanager менеджер сериализуемых транзакций поверх *sql.DB
// Используется, когда сбор метрик выключен
package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/OpenHouse-BookingService/pkg/dbmetrics"
	"github.com/m04kA/OpenHouse-BookingService/pkg/txmanager"
)

// TransactionManager управляет сериализуемыми транзакциями без обёртки метрик
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn в транзакции с уровнем изоляции SERIALIZABLE
// Семантика идентична txmanager.TransactionManager, включая маппинг конфликтов
// в txmanager.ErrTxConflict
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("%w: %v", txmanager.ErrBeginTx, err)
	}

	wrapped := &dbmetrics.SqlTxWrapper{Tx: tx}
	txCtx := dbmetrics.WithTx(ctx, wrapped)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return txmanager.WrapConflict(err)
	}

	if err := tx.Commit(); err != nil {
		if txmanager.IsConflict(err) {
			return fmt.Errorf("%w: %v", txmanager.ErrTxConflict, err)
		}
		return fmt.Errorf("%w: %v", txmanager.ErrCommitTx, err)
	}

	return nil
}
