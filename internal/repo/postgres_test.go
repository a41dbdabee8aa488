package repo

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SergeyBogomolovv/shop-order-service/internal/entities"
	"github.com/SergeyBogomolovv/shop-order-service/pkg/trm"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*postgresRepo, *sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		sqlxDB.Close()
	})
	return NewPostgresRepo(sqlxDB), sqlxDB, mock
}

var (
	markPaidQuery = `UPDATE orders SET is_paid = \$1, paid_at = \$2, transaction_id = \$3, payment_method = \$4, ` +
		`status = CASE WHEN status = \$5 THEN \$6 ELSE status END, updated_at = \$7 ` +
		`WHERE id = \$8 AND is_paid = \$9 RETURNING id, user_id`
	selectOrderQuery = regexp.QuoteMeta("SELECT id, user_id, items, total_price, status, is_paid, paid_at, " +
		"payment_method, transaction_id, shipping_address, created_at, updated_at FROM orders WHERE id = $1")
)

func orderRows(status string, paid bool, transactionID any, paidAt any) *sqlmock.Rows {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return sqlmock.NewRows(orderColumns).AddRow(
		"o1", "u1", `[{"product":"p1","name":"Mug","price":"30.299999999999997","qty":1}]`, "30.299999999999997",
		status, paid, paidAt, "Razorpay", transactionID, nil, created, created,
	)
}

func TestPostgresRepo_CreateOrder_KeepsTotal(t *testing.T) {
	r, _, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO orders \(id,user_id,items,total_price,status,is_paid,payment_method,shipping_address,created_at,updated_at\)`).
		WithArgs("o1", "u1", sqlmock.AnyArg(), "30.299999999999997", "pending", false, "Razorpay", nil, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := r.CreateOrder(context.Background(), entities.Order{
		ID:            "o1",
		UserID:        "u1",
		TotalPrice:    decimal.RequireFromString("30.299999999999997"),
		Status:        entities.StatusPending,
		PaymentMethod: entities.DefaultPaymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	require.NoError(t, err)
}

func TestPostgresRepo_GetOrderByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		r, _, mock := newMockRepo(t)
		mock.ExpectQuery(selectOrderQuery).WithArgs("o1").WillReturnRows(orderRows("pending", false, nil, nil))

		order, err := r.GetOrderByID(context.Background(), "o1")
		require.NoError(t, err)
		assert.Equal(t, "30.299999999999997", order.TotalPrice.String())
		assert.False(t, order.IsPaid)
	})

	t.Run("not found", func(t *testing.T) {
		r, _, mock := newMockRepo(t)
		mock.ExpectQuery(selectOrderQuery).WithArgs("o1").WillReturnRows(sqlmock.NewRows(orderColumns))

		_, err := r.GetOrderByID(context.Background(), "o1")
		assert.ErrorIs(t, err, entities.ErrOrderNotFound)
	})
}

func TestPostgresRepo_MarkPaid(t *testing.T) {
	paidAt := time.Date(2025, 1, 2, 4, 0, 0, 0, time.UTC)
	args := []driver.Value{true, paidAt, "pay_1", "Razorpay", "pending", "processing", paidAt, "o1", false}

	testCases := []struct {
		name        string
		mockExpect  func(mock sqlmock.Sqlmock)
		wantApplied bool
		wantErr     error
	}{
		{
			name: "unpaid order is updated",
			mockExpect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(markPaidQuery).WithArgs(args...).
					WillReturnRows(orderRows("processing", true, "pay_1", paidAt))
			},
			wantApplied: true,
		},
		{
			name: "same payment replayed",
			mockExpect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(markPaidQuery).WithArgs(args...).WillReturnRows(sqlmock.NewRows(orderColumns))
				mock.ExpectQuery(selectOrderQuery).WithArgs("o1").
					WillReturnRows(orderRows("shipped", true, "pay_1", paidAt))
			},
		},
		{
			name: "paid by another payment",
			mockExpect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(markPaidQuery).WithArgs(args...).WillReturnRows(sqlmock.NewRows(orderColumns))
				mock.ExpectQuery(selectOrderQuery).WithArgs("o1").
					WillReturnRows(orderRows("processing", true, "pay_0", paidAt))
			},
			wantErr: entities.ErrAlreadyPaid,
		},
		{
			name: "missing order",
			mockExpect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(markPaidQuery).WithArgs(args...).WillReturnRows(sqlmock.NewRows(orderColumns))
				mock.ExpectQuery(selectOrderQuery).WithArgs("o1").WillReturnRows(sqlmock.NewRows(orderColumns))
			},
			wantErr: entities.ErrOrderNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, _, mock := newMockRepo(t)
			tc.mockExpect(mock)

			order, applied, err := r.MarkPaid(context.Background(), "o1", "pay_1", "Razorpay", paidAt)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.False(t, applied)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantApplied, applied)
			assert.True(t, order.IsPaid)
			assert.Equal(t, "pay_1", order.TransactionID)
		})
	}
}

func TestPostgresRepo_SetStatus(t *testing.T) {
	t.Run("without guard", func(t *testing.T) {
		r, _, mock := newMockRepo(t)
		mock.ExpectQuery(`UPDATE orders SET status = \$1, updated_at = \$2 WHERE id = \$3 RETURNING`).
			WithArgs("cancelled", sqlmock.AnyArg(), "o1").
			WillReturnRows(orderRows("cancelled", false, nil, nil))

		order, err := r.SetStatus(context.Background(), "o1", entities.StatusCancelled, nil)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusCancelled, order.Status)
	})

	t.Run("guarded transition applied", func(t *testing.T) {
		r, _, mock := newMockRepo(t)
		mock.ExpectQuery(`UPDATE orders SET status = \$1, updated_at = \$2 WHERE id = \$3 AND status IN \(\$4\) RETURNING`).
			WithArgs("shipped", sqlmock.AnyArg(), "o1", "processing").
			WillReturnRows(orderRows("shipped", true, "pay_1", time.Now()))

		order, err := r.SetStatus(context.Background(), "o1", entities.StatusShipped, []entities.Status{entities.StatusProcessing})
		require.NoError(t, err)
		assert.Equal(t, entities.StatusShipped, order.Status)
	})

	t.Run("guard rejects regress", func(t *testing.T) {
		r, _, mock := newMockRepo(t)
		mock.ExpectQuery(`UPDATE orders SET status = \$1, updated_at = \$2 WHERE id = \$3 AND status IN \(\$4,\$5\) RETURNING`).
			WithArgs("processing", sqlmock.AnyArg(), "o1", "pending", "processing").
			WillReturnRows(sqlmock.NewRows(orderColumns))
		mock.ExpectQuery(selectOrderQuery).WithArgs("o1").WillReturnRows(orderRows("delivered", true, "pay_1", time.Now()))

		_, err := r.SetStatus(context.Background(), "o1", entities.StatusProcessing,
			[]entities.Status{entities.StatusPending, entities.StatusProcessing})
		assert.ErrorIs(t, err, entities.ErrValidation)
	})

	t.Run("missing order", func(t *testing.T) {
		r, _, mock := newMockRepo(t)
		mock.ExpectQuery(`UPDATE orders SET status`).WillReturnRows(sqlmock.NewRows(orderColumns))
		mock.ExpectQuery(selectOrderQuery).WithArgs("o1").WillReturnRows(sqlmock.NewRows(orderColumns))

		_, err := r.SetStatus(context.Background(), "o1", entities.StatusShipped, nil)
		assert.ErrorIs(t, err, entities.ErrOrderNotFound)
	})
}

func TestPostgresRepo_Intents(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	intentQuery := regexp.QuoteMeta("SELECT id, order_id, amount, currency, status, created_at FROM payment_intents WHERE id = $1")

	t.Run("save is idempotent insert", func(t *testing.T) {
		r, _, mock := newMockRepo(t)
		mock.ExpectExec(`INSERT INTO payment_intents \(id,order_id,amount,currency,status,created_at\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6\) ON CONFLICT \(id\) DO NOTHING`).
			WithArgs("order_gw_1", "o1", int64(3030), "INR", "created", created).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := r.SaveIntent(context.Background(), entities.PaymentIntent{
			ID: "order_gw_1", OrderID: "o1", Amount: 3030, Currency: "INR", Status: entities.IntentCreated, CreatedAt: created,
		})
		require.NoError(t, err)
	})

	t.Run("get", func(t *testing.T) {
		r, _, mock := newMockRepo(t)
		mock.ExpectQuery(intentQuery).WithArgs("order_gw_1").
			WillReturnRows(sqlmock.NewRows(intentColumns).AddRow("order_gw_1", "o1", 3030, "INR", "created", created))

		intent, err := r.GetIntent(context.Background(), "order_gw_1")
		require.NoError(t, err)
		assert.Equal(t, "o1", intent.OrderID)
		assert.Equal(t, int64(3030), intent.Amount)
	})

	t.Run("get unknown", func(t *testing.T) {
		r, _, mock := newMockRepo(t)
		mock.ExpectQuery(intentQuery).WithArgs("order_gw_x").WillReturnRows(sqlmock.NewRows(intentColumns))

		_, err := r.GetIntent(context.Background(), "order_gw_x")
		assert.ErrorIs(t, err, entities.ErrIntentNotFound)
	})

	for _, tc := range []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "mark paid", affected: 1},
		{name: "mark paid unknown", affected: 0, wantErr: entities.ErrIntentNotFound},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r, _, mock := newMockRepo(t)
			mock.ExpectExec(`UPDATE payment_intents SET status = \$1 WHERE id = \$2`).
				WithArgs("paid", "order_gw_1").
				WillReturnResult(sqlmock.NewResult(0, tc.affected))

			err := r.MarkIntentPaid(context.Background(), "order_gw_1")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPostgresRepo_PaymentTransaction(t *testing.T) {
	paidAt := time.Date(2025, 1, 2, 4, 0, 0, 0, time.UTC)

	t.Run("commit", func(t *testing.T) {
		r, db, mock := newMockRepo(t)
		mock.ExpectBegin()
		mock.ExpectQuery(markPaidQuery).WillReturnRows(orderRows("processing", true, "pay_1", paidAt))
		mock.ExpectExec(`UPDATE payment_intents SET status`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := trm.NewManager(db).Do(context.Background(), func(ctx context.Context) error {
			if _, _, err := r.MarkPaid(ctx, "o1", "pay_1", "Razorpay", paidAt); err != nil {
				return err
			}
			return r.MarkIntentPaid(ctx, "order_gw_1")
		})
		assert.NoError(t, err)
	})

	t.Run("rollback after partial write", func(t *testing.T) {
		r, db, mock := newMockRepo(t)
		intentErr := errors.New("intent update failed")
		mock.ExpectBegin()
		mock.ExpectQuery(markPaidQuery).WillReturnRows(orderRows("processing", true, "pay_1", paidAt))
		mock.ExpectExec(`UPDATE payment_intents SET status`).WillReturnError(intentErr)
		mock.ExpectRollback()

		err := trm.NewManager(db).Do(context.Background(), func(ctx context.Context) error {
			if _, _, err := r.MarkPaid(ctx, "o1", "pay_1", "Razorpay", paidAt); err != nil {
				return err
			}
			return r.MarkIntentPaid(ctx, "order_gw_1")
		})
		assert.ErrorIs(t, err, intentErr)
	})
}

func TestPostgresRepo_UserRole(t *testing.T) {
	query := regexp.QuoteMeta("SELECT role FROM users WHERE id = $1")

	testCases := []struct {
		name    string
		rows    *sqlmock.Rows
		want    entities.Role
		wantErr error
	}{
		{name: "admin", rows: sqlmock.NewRows([]string{"role"}).AddRow("admin"), want: entities.RoleAdmin},
		{name: "user", rows: sqlmock.NewRows([]string{"role"}).AddRow("user"), want: entities.RoleUser},
		{name: "unknown role", rows: sqlmock.NewRows([]string{"role"}).AddRow("manager"), want: entities.RoleUser},
		{name: "no user", rows: sqlmock.NewRows([]string{"role"}), wantErr: entities.ErrUserNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, _, mock := newMockRepo(t)
			mock.ExpectQuery(query).WithArgs("u1").WillReturnRows(tc.rows)

			role, err := r.UserRole(context.Background(), "u1")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, role)
		})
	}
}
