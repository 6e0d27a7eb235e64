package repositories

import (
	"velodrive/internal/models"
	"velodrive/internal/query"
)

var productSortColumns = query.NewSortColumns("p.name", map[string]string{
	string(models.ProductSortName):             "p.name",
	string(models.ProductSortPrice):            "p.price",
	string(models.ProductSortDiscountPercent):  "p.discount_percent",
	string(models.ProductSortStockQty):         "p.stock_qty",
	string(models.ProductSortCategoryName):     "pc.name",
	string(models.ProductSortSupplierName):     "s.name",
	string(models.ProductSortManufacturerName): "m.name",
})

// productSelect is the joined product projection shared by listing and lookups by article.
var productSelect = query.From("products p").
	Select(
		"p.article",
		"p.name",
		"p.unit",
		"p.price::text AS price",
		"p.supplier_id",
		"s.name AS supplier_name",
		"p.manufacturer_id",
		"m.name AS manufacturer_name",
		"p.category_id",
		"pc.name AS category_name",
		"p.discount_percent",
		"p.stock_qty",
		"p.description",
		"p.photo",
	).
	Join("INNER JOIN suppliers s ON s.id = p.supplier_id").
	Join("INNER JOIN manufacturers m ON m.id = p.manufacturer_id").
	Join("INNER JOIN product_categories pc ON pc.id = p.category_id")

// productConditions translates the filter into predicates. Absent filters
// contribute nothing.
func productConditions(f models.ProductFilter) []query.Condition {
	var conds []query.Condition

	if f.Search != "" {
		conds = append(conds, query.ILikeAny(query.Contains(f.Search),
			"p.article",
			"p.name",
			"p.unit",
			"COALESCE(p.description, '')",
			"s.name",
			"m.name",
			"pc.name",
		))
	}
	if f.CategoryID != nil {
		conds = append(conds, query.Eq("p.category_id", *f.CategoryID))
	}
	if f.SupplierID != nil {
		conds = append(conds, query.Eq("p.supplier_id", *f.SupplierID))
	}
	if f.ManufacturerID != nil {
		conds = append(conds, query.Eq("p.manufacturer_id", *f.ManufacturerID))
	}
	if f.InStockOnly {
		conds = append(conds, query.Raw("p.stock_qty > 0"))
	}
	if f.DiscountFrom != nil {
		conds = append(conds, query.Gte("p.discount_percent", *f.DiscountFrom))
	}
	if f.DiscountTo != nil {
		conds = append(conds, query.Lte("p.discount_percent", *f.DiscountTo))
	}

	return conds
}

func productListStatement(q models.ProductQuery) query.Statement {
	return productSelect.
		Where(productConditions(q.Filter)...).
		OrderBy(productSortColumns.Resolve(string(q.SortBy)), query.ParseDirection(string(q.SortDir))).
		OrderBy("p.article", query.Asc).
		Paginate(query.Page{Number: q.Page, Size: q.PageSize}).
		Build()
}

func productCountStatement(f models.ProductFilter) query.Statement {
	return productSelect.
		Where(productConditions(f)...).
		Count().
		Build()
}

func productByArticleStatement(article string) query.Statement {
	return productSelect.
		Where(query.Eq("p.article", article)).
		Build()
}
