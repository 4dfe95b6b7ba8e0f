package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, orderID string) (*Order, error)
	ListBySession(ctx context.Context, sessionID string) ([]Order, error)
}

type repo struct {
	db *sql.DB
}

// NewRepository returns the Postgres-backed repository.
func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	// nil stays SQL NULL for the three-step flow
	var address any
	if o.ShippingAddress != nil {
		b, err := json.Marshal(o.ShippingAddress)
		if err != nil {
			return fmt.Errorf("marshal shipping address: %w", err)
		}
		address = string(b)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, session_id, user_id, status, payment_method, promo_code, shipping_address, subtotal, discount, delivery_fee, total, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		o.ID, o.SessionID, nullString(o.UserID), string(o.Status), o.PaymentMethod, o.PromoCode, address,
		o.Subtotal, o.Discount, o.DeliveryFee, o.Total, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range o.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (id, order_id, product_id, name, rental_period, quantity, price)
             VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.NewString(), o.ID, it.ProductID, it.Name, string(it.RentalPeriod), it.Quantity, it.Price,
		)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

const selectOrder = `SELECT id, session_id, user_id, status, payment_method, promo_code, shipping_address, subtotal, discount, delivery_fee, total, created_at
         FROM orders`

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (Order, error) {
	var (
		o       Order
		userID  sql.NullString
		status  string
		address []byte
	)
	if err := s.Scan(&o.ID, &o.SessionID, &userID, &status, &o.PaymentMethod, &o.PromoCode, &address,
		&o.Subtotal, &o.Discount, &o.DeliveryFee, &o.Total, &o.CreatedAt); err != nil {
		return Order{}, err
	}
	o.UserID = userID.String
	o.Status = Status(status)
	if len(address) > 0 {
		var a Address
		if err := json.Unmarshal(address, &a); err != nil {
			return Order{}, fmt.Errorf("decode shipping address: %w", err)
		}
		o.ShippingAddress = &a
	}
	return o, nil
}

func (r *repo) GetByID(ctx context.Context, orderID string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, selectOrder+` WHERE id = $1`, orderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *repo) ListBySession(ctx context.Context, sessionID string) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, selectOrder+` WHERE session_id = $1 ORDER BY created_at DESC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *repo) loadItems(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, name, rental_period, quantity, price FROM order_items WHERE order_id = $1 ORDER BY product_id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var (
			it     Item
			period string
		)
		if err := rows.Scan(&it.ProductID, &it.Name, &period, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan order_item: %w", err)
		}
		it.RentalPeriod = pricing.Period(period)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
