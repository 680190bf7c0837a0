package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lanvy-atelier/dress-rental/internal/core/domain"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) CreateCashOrder(ctx context.Context, order *domain.Order, txn *domain.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	if err := insertOrder(ctx, tx, order, txn); err != nil {
		return err
	}

	// Commit every claimed instance to RENTED with its stored hold window.
	// The status guard means a swept or re-reserved instance is simply not
	// matched, which the count check below turns into a full rollback.
	query := `
	UPDATE dress_instances
	SET status = 'RENTED',
		rental_start = hold_start,
		rental_end = hold_end,
		reserved_at = NULL,
		hold_start = NULL,
		hold_end = NULL,
		version = version + 1
	WHERE held_by_order_id = $1 AND status = 'RESERVED'
	`

	result, err := tx.ExecContext(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("rent claimed instances: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected != int64(len(order.DressInstanceIDs())) {
		return domain.ErrHoldExpired
	}

	return tx.Commit()
}

func (r *OrderRepository) CreateOnlineOrder(ctx context.Context, order *domain.Order, txn *domain.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	if err := insertOrder(ctx, tx, order, txn); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	query := `
	SELECT id, code, customer_name, phone, COALESCE(email, ''), COALESCE(address, ''), status, transaction_id, created_at
	FROM orders
	WHERE id = $1
	`

	var o domain.Order
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(
		&o.ID,
		&o.Code,
		&o.CustomerName,
		&o.Phone,
		&o.Email,
		&o.Address,
		&o.Status,
		&o.TransactionID,
		&o.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	lines, err := r.linesByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines

	return &o, nil
}

func (r *OrderRepository) GetTransactionByPaymentLink(ctx context.Context, paymentLinkID string) (*domain.Transaction, error) {
	query := `
	SELECT id, order_id, payment_method, payment_status, original_amount, processing_fee, total_amount, COALESCE(payment_link_id, ''), created_at
	FROM transactions
	WHERE payment_link_id = $1
	`

	var t domain.Transaction
	err := r.db.QueryRowContext(ctx, query, paymentLinkID).Scan(
		&t.ID,
		&t.OrderID,
		&t.Method,
		&t.Status,
		&t.OriginalAmount,
		&t.ProcessingFee,
		&t.TotalAmount,
		&t.PaymentLinkID,
		&t.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &t, nil
}

func (r *OrderRepository) SettlePaid(ctx context.Context, txnID, orderID uuid.UUID) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}

	defer tx.Rollback()

	applied, err := lockPendingTransaction(ctx, tx, txnID)
	if err != nil || !applied {
		return false, err
	}

	var dressLines int64
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM order_lines WHERE order_id = $1 AND item_type = 'DRESS'`, orderID,
	).Scan(&dressLines)
	if err != nil {
		return false, err
	}

	result, err := tx.ExecContext(ctx, `
	UPDATE dress_instances
	SET status = 'RENTED',
		rental_start = hold_start,
		rental_end = hold_end,
		reserved_at = NULL,
		hold_start = NULL,
		hold_end = NULL,
		version = version + 1
	WHERE held_by_order_id = $1 AND status = 'RESERVED'
	`, orderID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	if affected != dressLines {
		// A hold was swept mid-payment. Leave the transaction PENDING for
		// operator follow-up rather than half-committing the order.
		return false, domain.ErrHoldExpired
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE transactions SET payment_status = 'PAID' WHERE id = $1`, txnID,
	); err != nil {
		return false, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = 'PROCESSING' WHERE id = $1`, orderID,
	); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

func (r *OrderRepository) CancelUnpaid(ctx context.Context, txnID, orderID uuid.UUID, toStatus domain.PaymentStatus) (bool, []uuid.UUID, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, nil, err
	}

	defer tx.Rollback()

	applied, err := lockPendingTransaction(ctx, tx, txnID)
	if err != nil || !applied {
		return false, nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE transactions SET payment_status = $2 WHERE id = $1`, txnID, toStatus,
	); err != nil {
		return false, nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = 'CANCELLED' WHERE id = $1`, orderID,
	); err != nil {
		return false, nil, err
	}

	rows, err := tx.QueryContext(ctx, `
	UPDATE dress_instances
	SET status = 'AVAILABLE',
		reserved_at = NULL,
		hold_start = NULL,
		hold_end = NULL,
		held_by_order_id = NULL,
		version = version + 1
	WHERE held_by_order_id = $1 AND status = 'RESERVED'
	RETURNING model_id
	`, orderID)
	if err != nil {
		return false, nil, err
	}

	defer rows.Close()

	var modelIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return false, nil, err
		}
		modelIDs = append(modelIDs, id)
	}
	if err := rows.Err(); err != nil {
		return false, nil, err
	}

	return true, modelIDs, tx.Commit()
}

// lockPendingTransaction takes a row lock on the transaction and reports
// whether it is still PENDING. Duplicate settlement deliveries serialize on
// this lock and the second one sees a non-PENDING status.
func lockPendingTransaction(ctx context.Context, tx *sql.Tx, txnID uuid.UUID) (bool, error) {
	var status domain.PaymentStatus
	err := tx.QueryRowContext(ctx,
		`SELECT payment_status FROM transactions WHERE id = $1 FOR UPDATE`, txnID,
	).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, domain.ErrNotFound
		}
		return false, err
	}
	return status == domain.PaymentPending, nil
}

func insertOrder(ctx context.Context, tx *sql.Tx, order *domain.Order, txn *domain.Transaction) error {
	queryHeader := `
	INSERT INTO orders (id, code, customer_name, phone, email, address, status, transaction_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := tx.ExecContext(ctx, queryHeader,
		order.ID, order.Code, order.CustomerName, order.Phone, order.Email, order.Address,
		order.Status, order.TransactionID, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order header: %w", err)
	}

	queryLine := `
	INSERT INTO order_lines (id, order_id, item_type, name, unit_price, start_date, end_date, amount, instance_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	stmt, err := tx.PrepareContext(ctx, queryLine)
	if err != nil {
		return fmt.Errorf("failed to prepare line statement: %w", err)
	}

	defer stmt.Close()

	for _, line := range order.Lines {
		_, err := stmt.ExecContext(ctx,
			line.ID, line.OrderID, line.ItemType, line.Name, line.UnitPrice,
			line.StartDate, line.EndDate, line.Amount, line.InstanceID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order line %s: %w", line.Name, err)
		}
	}

	queryTxn := `
	INSERT INTO transactions (id, order_id, payment_method, payment_status, original_amount, processing_fee, total_amount, payment_link_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)
	`

	_, err = tx.ExecContext(ctx, queryTxn,
		txn.ID, txn.OrderID, txn.Method, txn.Status,
		txn.OriginalAmount, txn.ProcessingFee, txn.TotalAmount, txn.PaymentLinkID, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

func (r *OrderRepository) linesByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.OrderLine, error) {
	query := `
	SELECT id, order_id, item_type, name, unit_price, start_date, end_date, amount, instance_id
	FROM order_lines
	WHERE order_id = $1
	ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var line domain.OrderLine
		var start, end sql.NullTime
		var instanceID sql.NullString

		err := rows.Scan(
			&line.ID, &line.OrderID, &line.ItemType, &line.Name, &line.UnitPrice,
			&start, &end, &line.Amount, &instanceID,
		)
		if err != nil {
			return nil, err
		}

		if start.Valid {
			line.StartDate = &start.Time
		}
		if end.Valid {
			line.EndDate = &end.Time
		}
		if instanceID.Valid && instanceID.String != "" {
			uid, err := uuid.Parse(instanceID.String)
			if err == nil {
				line.InstanceID = &uid
			}
		}

		lines = append(lines, line)
	}

	return lines, rows.Err()
}
