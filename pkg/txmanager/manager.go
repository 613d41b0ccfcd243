// Package txmanager менеджер сериализуемых транзакций поверх dbmetrics.DB
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/OpenHouse-BookingService/pkg/dbmetrics"
)

var (
	// ErrBeginTx возвращается при ошибке открытия транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается при ошибке фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrTxConflict возвращается при конфликте сериализации или deadlock
	// Вызывающая сторона решает, повторять ли операцию - автоматических ретраев нет,
	// занятость слотов могла измениться между попытками
	ErrTxConflict = errors.New("txmanager: transaction conflict")
)

// TransactionManager управляет сериализуемыми транзакциями
type TransactionManager struct {
	db *dbmetrics.DB
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db *dbmetrics.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn в транзакции с уровнем изоляции SERIALIZABLE
// Транзакция передается через context - репозитории подхватывают её через dbmetrics.GetExecutor
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return WrapConflict(err)
	}

	if err := tx.Commit(); err != nil {
		if IsConflict(err) {
			return fmt.Errorf("%w: %v", ErrTxConflict, err)
		}
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}

	return nil
}

// IsConflict определяет, является ли ошибка конфликтом сериализации или deadlock
// PostgreSQL коды: 40001 - serialization_failure, 40P01 - deadlock_detected
func IsConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

// WrapConflict оборачивает конфликт сериализации в ErrTxConflict, остальные ошибки не трогает
func WrapConflict(err error) error {
	if IsConflict(err) {
		return fmt.Errorf("%w: %v", ErrTxConflict, err)
	}
	return err
}
