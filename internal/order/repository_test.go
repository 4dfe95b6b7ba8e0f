package order

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
)

var (
	insertOrderSQL = regexp.QuoteMeta(`INSERT INTO orders (id, session_id, user_id, status, payment_method, promo_code, shipping_address, subtotal, discount, delivery_fee, total, created_at)`)
	insertItemSQL  = regexp.QuoteMeta(`INSERT INTO order_items (id, order_id, product_id, name, rental_period, quantity, price)`)
	orderColumns   = []string{"id", "session_id", "user_id", "status", "payment_method", "promo_code", "shipping_address", "subtotal", "discount", "delivery_fee", "total", "created_at"}
	itemColumns    = []string{"product_id", "name", "rental_period", "quantity", "price"}
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleOrder(now time.Time) *Order {
	return &Order{
		ID:            "order-123",
		SessionID:     "sess-1",
		PaymentMethod: "paypal",
		PromoCode:     "BUCKET10",
		Subtotal:      dec("149.99"),
		Discount:      dec("15.00"),
		DeliveryFee:   dec("15.99"),
		Total:         dec("150.98"),
		Status:        StatusPending,
		CreatedAt:     now,
		Items: []Item{
			{ProductID: 3, Name: "MacBook Pro 16\"", RentalPeriod: pricing.Weekly, Quantity: 1, Price: dec("149.99")},
		},
	}
}

func TestRepositoryCreate_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()
	o := sampleOrder(now)
	o.ShippingAddress = &Address{FullName: "Ada L", StreetAddress: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701", Country: "United States", Phone: "555-0100"}

	mock.ExpectBegin()
	mock.ExpectExec(insertOrderSQL).
		WithArgs(o.ID, o.SessionID, nil, "pending", "paypal", "BUCKET10", sqlmock.AnyArg(), o.Subtotal, o.Discount, o.DeliveryFee, o.Total, now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insertItemSQL).
		WithArgs(sqlmock.AnyArg(), o.ID, 3, "MacBook Pro 16\"", "weekly", 1, dec("149.99")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), o))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreate_AssignsIDAndStoresNullAddress(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	o := sampleOrder(time.Now())
	o.ID = ""
	o.UserID = "user-7"
	o.Items = nil

	mock.ExpectBegin()
	mock.ExpectExec(insertOrderSQL).
		WithArgs(sqlmock.AnyArg(), "sess-1", "user-7", "pending", "paypal", "BUCKET10", nil, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), o))
	assert.NotEmpty(t, o.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreate_ItemInsertErrorRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	o := sampleOrder(time.Now())

	mock.ExpectBegin()
	mock.ExpectExec(insertOrderSQL).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insertItemSQL).WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	err = repo.Create(context.Background(), o)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert order_item")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE id = $1`)).
		WithArgs("order-123").
		WillReturnRows(sqlmock.NewRows(orderColumns).
			AddRow("order-123", "sess-1", nil, "pending", "credit_card", "", []byte(`{"fullName":"Ada L","city":"Springfield"}`), "149.99", "0", "15.99", "165.98", now))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM order_items WHERE order_id = $1`)).
		WithArgs("order-123").
		WillReturnRows(sqlmock.NewRows(itemColumns).AddRow(3, "MacBook Pro 16\"", "weekly", 1, "149.99"))

	o, err := repo.GetByID(context.Background(), "order-123")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, o.Status)
	assert.Empty(t, o.UserID)
	require.NotNil(t, o.ShippingAddress)
	assert.Equal(t, "Springfield", o.ShippingAddress.City)
	assert.Equal(t, "165.98", o.Total.StringFixed(2))
	require.Len(t, o.Items, 1)
	assert.Equal(t, pricing.Weekly, o.Items[0].RentalPeriod)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE id = $1`)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err = NewRepository(db).GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryListBySession(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE session_id = $1 ORDER BY created_at DESC`)).
		WithArgs("sess-1").
		WillReturnRows(sqlmock.NewRows(orderColumns).
			AddRow("o2", "sess-1", "u1", "pending", "paypal", "", nil, "10", "0", "15.99", "25.99", now).
			AddRow("o1", "sess-1", "u1", "completed", "paypal", "", nil, "20", "0", "15.99", "35.99", now.Add(-time.Hour)))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM order_items WHERE order_id = $1`)).
		WithArgs("o2").
		WillReturnRows(sqlmock.NewRows(itemColumns).AddRow(6, "Bestseller Book Collection", "daily", 1, "10"))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM order_items WHERE order_id = $1`)).
		WithArgs("o1").
		WillReturnRows(sqlmock.NewRows(itemColumns))

	orders, err := NewRepository(db).ListBySession(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o2", orders[0].ID)
	assert.Equal(t, "u1", orders[0].UserID)
	assert.Nil(t, orders[0].ShippingAddress)
	assert.Len(t, orders[0].Items, 1)
	assert.Empty(t, orders[1].Items)
	assert.Equal(t, StatusCompleted, orders[1].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	now := time.Now()

	older := sampleOrder(now.Add(-time.Minute))
	older.ID = ""
	newer := sampleOrder(now)
	newer.ID = ""
	other := sampleOrder(now)
	other.ID = ""
	other.SessionID = "sess-2"

	for _, o := range []*Order{older, newer, other} {
		require.NoError(t, repo.Create(ctx, o))
		require.NotEmpty(t, o.ID)
	}

	list, err := repo.ListBySession(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)

	got, err := repo.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "sess-2", got.SessionID)

	_, err = repo.GetByID(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
}
