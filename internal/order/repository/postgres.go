package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/lifecycle"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/postgres"
	"github.com/jmoiron/sqlx"
)

// IdempotencyConstraint is the unique index on (store_id, idempotency_key).
const IdempotencyConstraint = "orders_store_idempotency_key"

const orderColumns = `id, store_id, status, customer_name, customer_last_name, customer_contact, note,
	delivery_type, delivery_address, zone_key, zone_name, delivery_price, items,
	subtotal, final_total, payment_mode, amount_paid_now, deposit_amount, estimated_minutes,
	stock_processed, idempotency_key, created_at, decision_at, ready_at, closed_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	query := `
        INSERT INTO orders (` + orderColumns + `)
        VALUES (
            :id, :store_id, :status, :customer_name, :customer_last_name, :customer_contact, :note,
            :delivery_type, :delivery_address, :zone_key, :zone_name, :delivery_price, :items,
            :subtotal, :final_total, :payment_mode, :amount_paid_now, :deposit_amount, :estimated_minutes,
            :stock_processed, :idempotency_key, :created_at, :decision_at, :ready_at, :closed_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, o)
	if postgres.IsUniqueViolation(err, IdempotencyConstraint) {
		return fmt.Errorf("insert order %s: %w", o.ID, order.ErrIdempotencyConflict)
	}
	return err
}

func (r *PGRepository) findOne(ctx context.Context, query string, args ...interface{}) (*model.Order, error) {
	var o model.Order
	err := r.DB.GetContext(ctx, &o, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) FindByID(ctx context.Context, storeID, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND store_id = $2 LIMIT 1`
	return r.findOne(ctx, query, id, storeID)
}

func (r *PGRepository) FindByIdempotencyKey(ctx context.Context, storeID, key string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE store_id = $1 AND idempotency_key = $2 LIMIT 1`
	return r.findOne(ctx, query, storeID, key)
}

func (r *PGRepository) FindByStatuses(ctx context.Context, storeID string, statuses []model.OrderStatus, ascending bool, limit int) ([]model.Order, error) {
	orders := []model.Order{}
	if len(statuses) == 0 {
		return orders, nil
	}

	orderBy := "created_at DESC"
	if ascending {
		orderBy = "created_at ASC"
	}
	query, args, err := sqlx.In(
		`SELECT `+orderColumns+` FROM orders WHERE store_id = ? AND status IN (?) ORDER BY `+orderBy+` LIMIT ?`,
		storeID, statuses, limit,
	)
	if err != nil {
		return nil, err
	}
	if err := r.DB.SelectContext(ctx, &orders, r.DB.Rebind(query), args...); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PGRepository) FindClosedSince(ctx context.Context, storeID string, since time.Time) ([]model.Order, error) {
	orders := []model.Order{}
	query := `SELECT ` + orderColumns + ` FROM orders
        WHERE store_id = $1 AND status IN ('delivered', 'rejected') AND created_at >= $2
        ORDER BY created_at DESC`
	if err := r.DB.SelectContext(ctx, &orders, query, storeID, since); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PGRepository) ApplyTransition(ctx context.Context, storeID, id string, p lifecycle.Patch) (bool, error) {
	query := `
        UPDATE orders
        SET status = $1,
            estimated_minutes = COALESCE($2, estimated_minutes),
            decision_at = COALESCE($3, decision_at),
            ready_at = COALESCE($4, ready_at),
            closed_at = COALESCE($5, closed_at),
            updated_at = $6
        WHERE id = $7 AND store_id = $8 AND status = $9
    `
	res, err := r.DB.ExecContext(ctx, query,
		string(p.Status), p.EstimatedMinutes, p.DecisionAt, p.ReadyAt, p.ClosedAt, p.UpdatedAt,
		id, storeID, string(p.From),
	)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *PGRepository) Delete(ctx context.Context, storeID, id string, from model.OrderStatus) (bool, error) {
	query := `DELETE FROM orders WHERE id = $1 AND store_id = $2 AND status = $3`
	res, err := r.DB.ExecContext(ctx, query, id, storeID, string(from))
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *PGRepository) MarkStockProcessed(ctx context.Context, storeID, id string) error {
	query := `UPDATE orders SET stock_processed = true WHERE id = $1 AND store_id = $2 AND stock_processed = false`
	_, err := r.DB.ExecContext(ctx, query, id, storeID)
	return err
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
