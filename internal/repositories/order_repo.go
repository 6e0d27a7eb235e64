package repositories

import (
	"context"
	"errors"
	"fmt"

	"velodrive/internal/common"
	"velodrive/internal/models"

	"github.com/jackc/pgx/v5"
)

type OrderRepository interface {
	List(ctx context.Context, q models.OrderQuery) ([]models.OrderListItem, error)
	Count(ctx context.Context, f models.OrderFilter) (int, error)
	GetByID(ctx context.Context, id int64) (*models.OrderListItem, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id int64) error
	MaxID(ctx context.Context) (int64, error)
}

type orderRepo struct {
	db Database
}

func NewOrderRepo(db Database) OrderRepository {
	return &orderRepo{db: db}
}

const insertOrderSQL = `
		INSERT INTO orders (id, order_date, delivery_date, pickup_point_id, user_id, pickup_code, status)
		VALUES ($1, $2::date, $3::date, $4, $5, $6, $7)
	`

const updateOrderSQL = `
		UPDATE orders
		SET order_date = $2::date, delivery_date = $3::date, pickup_point_id = $4, user_id = $5,
			pickup_code = $6, status = $7
		WHERE id = $1
	`

const deleteOrderSQL = `DELETE FROM orders WHERE id = $1`

const maxOrderIDSQL = `SELECT COALESCE(MAX(id), 0)::bigint AS max_id FROM orders`

func (r *orderRepo) List(ctx context.Context, q models.OrderQuery) ([]models.OrderListItem, error) {
	stmt := orderListStatement(q)
	rows, err := r.db.Query(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	items := make([]models.OrderListItem, 0, q.PageSize)
	for rows.Next() {
		var item models.OrderListItem
		if err := scanOrderRow(rows, &item); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return items, nil
}

func (r *orderRepo) Count(ctx context.Context, f models.OrderFilter) (int, error) {
	stmt := orderCountStatement(f)
	var total int
	if err := r.db.QueryRow(ctx, stmt.SQL, stmt.Args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return total, nil
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*models.OrderListItem, error) {
	stmt := orderByIDStatement(id)
	var item models.OrderListItem
	err := scanOrderRow(r.db.QueryRow(ctx, stmt.SQL, stmt.Args...), &item)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("Order")
		}
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return &item, nil
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	_, err := r.db.Exec(ctx, insertOrderSQL,
		order.ID, order.OrderDate, order.DeliveryDate, order.PickupPointID, order.UserID,
		order.PickupCode, order.Status)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepo) Update(ctx context.Context, order *models.Order) error {
	tag, err := r.db.Exec(ctx, updateOrderSQL,
		order.ID, order.OrderDate, order.DeliveryDate, order.PickupPointID, order.UserID,
		order.PickupCode, order.Status)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("Order")
	}
	return nil
}

func (r *orderRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, deleteOrderSQL, id)
	if err != nil {
		if common.IsForeignKeyViolation(err) {
			return common.NewReferencedError("Order", "order items")
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("Order")
	}
	return nil
}

func (r *orderRepo) MaxID(ctx context.Context) (int64, error) {
	var max int64
	if err := r.db.QueryRow(ctx, maxOrderIDSQL).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to read max order id: %w", err)
	}
	return max, nil
}

func scanOrderRow(row pgx.Row, o *models.OrderListItem) error {
	return row.Scan(
		&o.ID,
		&o.OrderDate,
		&o.DeliveryDate,
		&o.PickupPointID,
		&o.PickupPointLabel,
		&o.UserID,
		&o.UserFullName,
		&o.PickupCode,
		&o.Status,
	)
}
