package repositories

import (
	"context"
	"errors"
	"fmt"

	"velodrive/internal/common"
	"velodrive/internal/models"

	"github.com/jackc/pgx/v5"
)

type ProductRepository interface {
	List(ctx context.Context, q models.ProductQuery) ([]models.ProductRow, error)
	Count(ctx context.Context, f models.ProductFilter) (int, error)
	GetByArticle(ctx context.Context, article string) (*models.ProductRow, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, article string) error
	MaxArticleNumber(ctx context.Context) (int64, error)
}

type productRepo struct {
	db Database
}

func NewProductRepo(db Database) ProductRepository {
	return &productRepo{db: db}
}

const insertProductSQL = `
		INSERT INTO products (article, name, unit, price, supplier_id, manufacturer_id, category_id,
			discount_percent, stock_qty, description, photo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

const updateProductSQL = `
		UPDATE products
		SET name = $2, unit = $3, price = $4, supplier_id = $5, manufacturer_id = $6, category_id = $7,
			discount_percent = $8, stock_qty = $9, description = $10, photo = $11
		WHERE article = $1
	`

const deleteProductSQL = `DELETE FROM products WHERE article = $1`

// Digit components longer than 18 characters would overflow bigint and are skipped.
const maxArticleNumberSQL = `
		SELECT COALESCE(MAX(regexp_replace(article, '\D', '', 'g')::bigint), 0) AS max_number
		FROM products
		WHERE length(regexp_replace(article, '\D', '', 'g')) BETWEEN 1 AND 18
	`

func (r *productRepo) List(ctx context.Context, q models.ProductQuery) ([]models.ProductRow, error) {
	stmt := productListStatement(q)
	rows, err := r.db.Query(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	items := make([]models.ProductRow, 0, q.PageSize)
	for rows.Next() {
		var row models.ProductRow
		if err := scanProductRow(rows, &row); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		items = append(items, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return items, nil
}

func (r *productRepo) Count(ctx context.Context, f models.ProductFilter) (int, error) {
	stmt := productCountStatement(f)
	var total int
	if err := r.db.QueryRow(ctx, stmt.SQL, stmt.Args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

func (r *productRepo) GetByArticle(ctx context.Context, article string) (*models.ProductRow, error) {
	stmt := productByArticleStatement(article)
	var row models.ProductRow
	err := scanProductRow(r.db.QueryRow(ctx, stmt.SQL, stmt.Args...), &row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("Product")
		}
		return nil, fmt.Errorf("failed to get product %s: %w", article, err)
	}
	return &row, nil
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	_, err := r.db.Exec(ctx, insertProductSQL,
		product.Article, product.Name, product.Unit, product.Price,
		product.SupplierID, product.ManufacturerID, product.CategoryID,
		product.DiscountPercent, product.StockQty, product.Description, product.Photo)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	tag, err := r.db.Exec(ctx, updateProductSQL,
		product.Article, product.Name, product.Unit, product.Price,
		product.SupplierID, product.ManufacturerID, product.CategoryID,
		product.DiscountPercent, product.StockQty, product.Description, product.Photo)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("Product")
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, article string) error {
	tag, err := r.db.Exec(ctx, deleteProductSQL, article)
	if err != nil {
		if common.IsForeignKeyViolation(err) {
			return common.NewReferencedError("Product", "orders")
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("Product")
	}
	return nil
}

func (r *productRepo) MaxArticleNumber(ctx context.Context) (int64, error) {
	var max int64
	if err := r.db.QueryRow(ctx, maxArticleNumberSQL).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to read max article number: %w", err)
	}
	return max, nil
}

func scanProductRow(row pgx.Row, p *models.ProductRow) error {
	return row.Scan(
		&p.Article,
		&p.Name,
		&p.Unit,
		&p.Price,
		&p.SupplierID,
		&p.SupplierName,
		&p.ManufacturerID,
		&p.ManufacturerName,
		&p.CategoryID,
		&p.CategoryName,
		&p.DiscountPercent,
		&p.StockQty,
		&p.Description,
		&p.Photo,
	)
}
