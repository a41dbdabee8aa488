package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/shop-order-service/internal/entities"
	"github.com/SergeyBogomolovv/shop-order-service/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var orderColumns = []string{
	"id", "user_id", "items", "total_price", "status", "is_paid", "paid_at",
	"payment_method", "transaction_id", "shipping_address", "created_at", "updated_at",
}

var intentColumns = []string{"id", "order_id", "amount", "currency", "status", "created_at"}

type postgresRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewPostgresRepo(db *sqlx.DB) *postgresRepo {
	return &postgresRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *postgresRepo) CreateOrder(ctx context.Context, o entities.Order) error {
	items, err := ItemsToJSON(o.Items)
	if err != nil {
		return err
	}
	address, err := ShippingAddressToJSON(o.ShippingAddress)
	if err != nil {
		return err
	}

	query, args := r.qb.Insert("orders").
		Columns(
			"id", "user_id", "items", "total_price", "status", "is_paid",
			"payment_method", "shipping_address", "created_at", "updated_at",
		).
		Values(
			o.ID, o.UserID, items, o.TotalPrice, string(o.Status), o.IsPaid,
			o.PaymentMethod, address, o.CreatedAt, o.UpdatedAt,
		).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": orderID}).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	return OrderToEntity(order)
}

func (r *postgresRepo) OrdersByUser(ctx context.Context, userID string) ([]entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		MustSql()

	return r.selectOrders(ctx, query, args...)
}

func (r *postgresRepo) LatestOrders(ctx context.Context, count int) ([]entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC").
		Limit(uint64(count)).
		MustSql()

	return r.selectOrders(ctx, query, args...)
}

func (r *postgresRepo) AllOrders(ctx context.Context) ([]entities.Order, error) {
	columns := make([]string, 0, len(orderColumns)+2)
	for _, c := range orderColumns {
		columns = append(columns, "o."+c)
	}
	columns = append(columns, "u.name AS owner_name", "u.email AS owner_email")

	query, args := r.qb.Select(columns...).
		From("orders o").
		LeftJoin("users u ON u.id = o.user_id").
		OrderBy("o.created_at DESC").
		MustSql()

	var rows []OrderWithOwner
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}

	result := make([]entities.Order, 0, len(rows))
	for _, row := range rows {
		order, err := OrderWithOwnerToEntity(row)
		if err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, nil
}

// MarkPaid атомарно помечает заказ оплаченным, только если он ещё не оплачен.
// Повторный вызов с тем же transactionID возвращает сохранённый заказ без изменений и applied = false.
func (r *postgresRepo) MarkPaid(ctx context.Context, orderID, transactionID, paymentMethod string, paidAt time.Time) (entities.Order, bool, error) {
	query, args := r.qb.Update("orders").
		Set("is_paid", true).
		Set("paid_at", paidAt).
		Set("transaction_id", transactionID).
		Set("payment_method", paymentMethod).
		Set("status", sq.Expr("CASE WHEN status = ? THEN ? ELSE status END",
			string(entities.StatusPending), string(entities.StatusProcessing))).
		Set("updated_at", paidAt).
		Where(sq.Eq{"id": orderID, "is_paid": false}).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if err == nil {
		paid, err := OrderToEntity(order)
		return paid, err == nil, err
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, false, fmt.Errorf("failed to mark order paid: %w", err)
	}

	existing, err := r.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, false, err
	}
	if existing.TransactionID == transactionID {
		return existing, false, nil
	}
	return entities.Order{}, false, entities.ErrAlreadyPaid
}

// SetStatus меняет статус заказа. Если from не пуст, статус меняется
// только когда текущий статус входит в from.
func (r *postgresRepo) SetStatus(ctx context.Context, orderID string, status entities.Status, from []entities.Status) (entities.Order, error) {
	where := sq.Eq{"id": orderID}
	if len(from) > 0 {
		allowed := make([]string, 0, len(from))
		for _, s := range from {
			allowed = append(allowed, string(s))
		}
		where["status"] = allowed
	}

	query, args := r.qb.Update("orders").
		Set("status", string(status)).
		Set("updated_at", time.Now().UTC()).
		Where(where).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if err == nil {
		return OrderToEntity(order)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, fmt.Errorf("failed to update status: %w", err)
	}

	existing, err := r.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	return entities.Order{}, fmt.Errorf("%w: cannot change status from %s to %s",
		entities.ErrValidation, existing.Status, status)
}

func (r *postgresRepo) SaveIntent(ctx context.Context, p entities.PaymentIntent) error {
	query, args := r.qb.Insert("payment_intents").
		Columns(intentColumns...).
		Values(p.ID, p.OrderID, p.Amount, p.Currency, string(p.Status), p.CreatedAt).
		Suffix("ON CONFLICT (id) DO NOTHING").
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save payment intent: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetIntent(ctx context.Context, intentID string) (entities.PaymentIntent, error) {
	query, args := r.qb.Select(intentColumns...).
		From("payment_intents").
		Where(sq.Eq{"id": intentID}).
		MustSql()

	var intent PaymentIntent
	err := r.getContext(ctx, &intent, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.PaymentIntent{}, entities.ErrIntentNotFound
	}
	if err != nil {
		return entities.PaymentIntent{}, fmt.Errorf("failed to get payment intent: %w", err)
	}
	return IntentToEntity(intent), nil
}

func (r *postgresRepo) MarkIntentPaid(ctx context.Context, intentID string) error {
	query, args := r.qb.Update("payment_intents").
		Set("status", string(entities.IntentPaid)).
		Where(sq.Eq{"id": intentID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to mark payment intent paid: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entities.ErrIntentNotFound
	}
	return nil
}

// UserRole возвращает роль пользователя из users; неизвестные роли считаются пользовательскими.
func (r *postgresRepo) UserRole(ctx context.Context, userID string) (entities.Role, error) {
	query, args := r.qb.Select("role").
		From("users").
		Where(sq.Eq{"id": userID}).
		MustSql()

	var role string
	err := r.getContext(ctx, &role, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return "", entities.ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user role: %w", err)
	}
	if role == string(entities.RoleAdmin) {
		return entities.RoleAdmin, nil
	}
	return entities.RoleUser, nil
}

func (r *postgresRepo) selectOrders(ctx context.Context, query string, args ...any) ([]entities.Order, error) {
	var rows []Order
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}

	result := make([]entities.Order, 0, len(rows))
	for _, row := range rows {
		order, err := OrderToEntity(row)
		if err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, nil
}

func (r *postgresRepo) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return trm.Executor(ctx, r.db).ExecContext(ctx, query, args...)
}

func (r *postgresRepo) getContext(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.GetContext(ctx, trm.Executor(ctx, r.db), dest, query, args...)
}

func (r *postgresRepo) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.SelectContext(ctx, trm.Executor(ctx, r.db), dest, query, args...)
}
