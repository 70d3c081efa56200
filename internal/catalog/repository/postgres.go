package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/jmoiron/sqlx"
)

const (
	storeColumns   = `id, name, is_active, payment, windows, created_at, updated_at`
	productColumns = `id, store_id, name, category, detail, variants, option_groups, schedule_tags, available, sort_order, created_at, updated_at`
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// FindStoreByID returns nil, nil when the store does not exist.
func (r *PGRepository) FindStoreByID(ctx context.Context, id string) (*model.Store, error) {
	var store model.Store
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &store, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *PGRepository) FindActiveStores(ctx context.Context) ([]model.Store, error) {
	stores := []model.Store{}
	query := `SELECT ` + storeColumns + ` FROM stores WHERE is_active = true ORDER BY name`
	if err := r.DB.SelectContext(ctx, &stores, query); err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *PGRepository) FindProductsByStore(ctx context.Context, storeID string) ([]model.Product, error) {
	products := []model.Product{}
	query := `SELECT ` + productColumns + ` FROM products WHERE store_id = $1 ORDER BY sort_order, name`
	if err := r.DB.SelectContext(ctx, &products, query, storeID); err != nil {
		return nil, err
	}
	return products, nil
}
