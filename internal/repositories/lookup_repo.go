package repositories

import (
	"context"
	"fmt"

	"velodrive/internal/models"
)

// LookupRepository reads the option sets shown next to listings.
type LookupRepository interface {
	Categories(ctx context.Context) ([]models.LookupItem, error)
	Suppliers(ctx context.Context) ([]models.LookupItem, error)
	Manufacturers(ctx context.Context) ([]models.LookupItem, error)
	Statuses(ctx context.Context) ([]string, error)
	PickupPoints(ctx context.Context) ([]models.PickupPointLookupItem, error)
	Users(ctx context.Context) ([]models.UserLookupItem, error)
}

type lookupRepo struct {
	db Database
}

func NewLookupRepo(db Database) LookupRepository {
	return &lookupRepo{db: db}
}

const (
	categoriesSQL    = `SELECT id, name FROM product_categories ORDER BY name`
	suppliersSQL     = `SELECT id, name FROM suppliers ORDER BY name`
	manufacturersSQL = `SELECT id, name FROM manufacturers ORDER BY name`
	statusesSQL      = `SELECT DISTINCT status FROM orders WHERE TRIM(status) <> '' ORDER BY status`
	pickupPointsSQL  = `SELECT pp.id, ` + pickupPointLabelSQL + ` AS label FROM pickup_points pp ORDER BY pp.id`
	usersSQL         = `SELECT id, full_name FROM users ORDER BY full_name`
)

func (r *lookupRepo) Categories(ctx context.Context) ([]models.LookupItem, error) {
	return r.namedItems(ctx, "categories", categoriesSQL)
}

func (r *lookupRepo) Suppliers(ctx context.Context) ([]models.LookupItem, error) {
	return r.namedItems(ctx, "suppliers", suppliersSQL)
}

func (r *lookupRepo) Manufacturers(ctx context.Context) ([]models.LookupItem, error) {
	return r.namedItems(ctx, "manufacturers", manufacturersSQL)
}

func (r *lookupRepo) namedItems(ctx context.Context, set, sql string) ([]models.LookupItem, error) {
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", set, err)
	}
	defer rows.Close()

	items := []models.LookupItem{}
	for rows.Next() {
		var item models.LookupItem
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", set, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *lookupRepo) Statuses(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, statusesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to load statuses: %w", err)
	}
	defer rows.Close()

	statuses := []string{}
	for rows.Next() {
		var status string
		if err := rows.Scan(&status); err != nil {
			return nil, fmt.Errorf("failed to scan status: %w", err)
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}

func (r *lookupRepo) PickupPoints(ctx context.Context) ([]models.PickupPointLookupItem, error) {
	rows, err := r.db.Query(ctx, pickupPointsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to load pickup points: %w", err)
	}
	defer rows.Close()

	points := []models.PickupPointLookupItem{}
	for rows.Next() {
		var p models.PickupPointLookupItem
		if err := rows.Scan(&p.ID, &p.Label); err != nil {
			return nil, fmt.Errorf("failed to scan pickup point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *lookupRepo) Users(ctx context.Context) ([]models.UserLookupItem, error) {
	rows, err := r.db.Query(ctx, usersSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	defer rows.Close()

	users := []models.UserLookupItem{}
	for rows.Next() {
		var u models.UserLookupItem
		if err := rows.Scan(&u.ID, &u.FullName); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
