package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"velodrive/internal/common"
	"velodrive/internal/models"

	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func stringPtr(s string) *string { return &s }
func int64Ptr(i int64) *int64    { return &i }
func intPtr(i int) *int          { return &i }

var productColumns = []string{
	"article", "name", "unit", "price", "supplier_id", "supplier_name", "manufacturer_id",
	"manufacturer_name", "category_id", "category_name", "discount_percent", "stock_qty",
	"description", "photo",
}

type ProductRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    ProductRepository
	context context.Context
}

func (suite *ProductRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewProductRepo(mock)
	suite.context = context.Background()
}

func (suite *ProductRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestProductRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepoTestSuite))
}

func (suite *ProductRepoTestSuite) TestList_Success() {
	q := models.ProductQuery{
		Filter:   models.ProductFilter{Search: "city", InStockOnly: true},
		Page:     2,
		PageSize: 10,
		SortBy:   models.ProductSortPrice,
		SortDir:  models.SortDesc,
	}
	stmt := productListStatement(q)

	rows := pgxmock.NewRows(productColumns).
		AddRow("A112T4", "City bike", "pcs", "19990.00", int64(1), "Velo Ltd", int64(2), "Stels", int64(3),
			"Bicycles", 15, 4, stringPtr("Steel frame"), (*string)(nil))

	suite.mock.ExpectQuery(regexp.QuoteMeta(stmt.SQL)).
		WithArgs("%city%", int64(10), int64(10)).
		WillReturnRows(rows)

	items, err := suite.repo.List(suite.context, q)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), items, 1)
	assert.Equal(suite.T(), "A112T4", items[0].Article)
	assert.Equal(suite.T(), "19990.00", items[0].Price)
	assert.Equal(suite.T(), "Velo Ltd", items[0].SupplierName)
	assert.Equal(suite.T(), 15, items[0].DiscountPercent)
	require.NotNil(suite.T(), items[0].Description)
	assert.Equal(suite.T(), "Steel frame", *items[0].Description)
	assert.Nil(suite.T(), items[0].Photo)
}

func (suite *ProductRepoTestSuite) TestList_QueryError() {
	q := models.ProductQuery{Page: 1, PageSize: 10}
	stmt := productListStatement(q)

	suite.mock.ExpectQuery(regexp.QuoteMeta(stmt.SQL)).
		WithArgs(int64(10), int64(0)).
		WillReturnError(errors.New("connection refused"))

	_, err := suite.repo.List(suite.context, q)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "failed to list products")
}

func (suite *ProductRepoTestSuite) TestCount_UsesSameFilters() {
	f := models.ProductFilter{CategoryID: int64Ptr(3), DiscountFrom: intPtr(10)}
	stmt := productCountStatement(f)

	suite.mock.ExpectQuery(regexp.QuoteMeta(stmt.SQL)).
		WithArgs(int64(3), 10).
		WillReturnRows(pgxmock.NewRows([]string{"total"}).AddRow(42))

	total, err := suite.repo.Count(suite.context, f)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 42, total)
}

func (suite *ProductRepoTestSuite) TestGetByArticle_NotFound() {
	stmt := productByArticleStatement("NOPE")

	suite.mock.ExpectQuery(regexp.QuoteMeta(stmt.SQL)).
		WithArgs("NOPE").
		WillReturnError(pgx.ErrNoRows)

	_, err := suite.repo.GetByArticle(suite.context, "NOPE")
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}

func (suite *ProductRepoTestSuite) TestCreate_Success() {
	p := &models.Product{
		Article: "AUTO-46", Name: "Helmet", Unit: "pcs", Price: 2500,
		SupplierID: 1, ManufacturerID: 2, CategoryID: 3, DiscountPercent: 0, StockQty: 7,
	}

	suite.mock.ExpectExec(regexp.QuoteMeta(insertProductSQL)).
		WithArgs(p.Article, p.Name, p.Unit, p.Price, p.SupplierID, p.ManufacturerID, p.CategoryID,
			p.DiscountPercent, p.StockQty, p.Description, p.Photo).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(suite.T(), suite.repo.Create(suite.context, p))
}

func (suite *ProductRepoTestSuite) TestUpdate_NotFound() {
	p := &models.Product{Article: "MISSING", Name: "x", Unit: "pcs", SupplierID: 1, ManufacturerID: 1, CategoryID: 1}

	suite.mock.ExpectExec(regexp.QuoteMeta(updateProductSQL)).
		WithArgs(p.Article, p.Name, p.Unit, p.Price, p.SupplierID, p.ManufacturerID, p.CategoryID,
			p.DiscountPercent, p.StockQty, p.Description, p.Photo).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.Update(suite.context, p)
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}

func (suite *ProductRepoTestSuite) TestDelete_Success() {
	suite.mock.ExpectExec(regexp.QuoteMeta(deleteProductSQL)).
		WithArgs("A112T4").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(suite.T(), suite.repo.Delete(suite.context, "A112T4"))
}

func (suite *ProductRepoTestSuite) TestDelete_NotFound() {
	suite.mock.ExpectExec(regexp.QuoteMeta(deleteProductSQL)).
		WithArgs("A112T4").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := suite.repo.Delete(suite.context, "A112T4")
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}

func (suite *ProductRepoTestSuite) TestDelete_ReferencedByOrders() {
	suite.mock.ExpectExec(regexp.QuoteMeta(deleteProductSQL)).
		WithArgs("A112T4").
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})

	err := suite.repo.Delete(suite.context, "A112T4")
	assert.True(suite.T(), errors.Is(err, common.ErrReferenced))
	assert.Equal(suite.T(), "Product cannot be deleted because it is used in orders", err.Error())
}

func (suite *ProductRepoTestSuite) TestMaxArticleNumber() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(maxArticleNumberSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"max_number"}).AddRow(int64(45)))

	max, err := suite.repo.MaxArticleNumber(suite.context)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(45), max)
}

func TestProductListStatement_FullFilterSet(t *testing.T) {
	stmt := productListStatement(models.ProductQuery{
		Filter: models.ProductFilter{
			Search:         "shimano",
			CategoryID:     int64Ptr(1),
			SupplierID:     int64Ptr(2),
			ManufacturerID: int64Ptr(3),
			InStockOnly:    true,
			DiscountFrom:   intPtr(5),
			DiscountTo:     intPtr(30),
		},
		Page:     3,
		PageSize: 20,
		SortBy:   models.ProductSortSupplierName,
		SortDir:  models.SortDesc,
	})

	assert.Contains(t, stmt.SQL,
		"WHERE (p.article ILIKE $1 OR p.name ILIKE $1 OR p.unit ILIKE $1 OR COALESCE(p.description, '') ILIKE $1 OR s.name ILIKE $1 OR m.name ILIKE $1 OR pc.name ILIKE $1)"+
			" AND p.category_id = $2 AND p.supplier_id = $3 AND p.manufacturer_id = $4 AND p.stock_qty > 0"+
			" AND p.discount_percent >= $5 AND p.discount_percent <= $6")
	assert.Contains(t, stmt.SQL, "ORDER BY s.name DESC, p.article ASC LIMIT $7 OFFSET $8")
	assert.Equal(t, []interface{}{"%shimano%", int64(1), int64(2), int64(3), 5, 30, int64(20), int64(40)}, stmt.Args)
}

func TestProductListStatement_NoFilters(t *testing.T) {
	stmt := productListStatement(models.ProductQuery{Page: 1, PageSize: 10, SortBy: "bogus"})

	assert.NotContains(t, stmt.SQL, "WHERE")
	assert.Contains(t, stmt.SQL, "ORDER BY p.name ASC, p.article ASC LIMIT $1 OFFSET $2")
	assert.Equal(t, []interface{}{int64(10), int64(0)}, stmt.Args)
}

func TestProductCountStatement_MatchesListFilters(t *testing.T) {
	f := models.ProductFilter{Search: "bell", DiscountTo: intPtr(0)}
	list := productListStatement(models.ProductQuery{Filter: f, Page: 1, PageSize: 10})
	count := productCountStatement(f)

	assert.True(t, len(list.Args) == len(count.Args)+2)
	assert.Equal(t, count.Args, list.Args[:len(count.Args)])
	assert.Contains(t, count.SQL, "SELECT COUNT(*)::int AS total FROM products p")
	assert.NotContains(t, count.SQL, "ORDER BY")
	assert.NotContains(t, count.SQL, "LIMIT")
}
