package services

import (
	"fmt"
	"strings"

	"velodrive/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DiscountedPrice returns price * (100 - discount) / 100 rounded to cents.
// The discount is clamped to [0, 100].
func DiscountedPrice(price decimal.Decimal, discountPercent int) decimal.Decimal {
	if discountPercent < 0 {
		discountPercent = 0
	}
	if discountPercent > 100 {
		discountPercent = 100
	}
	return price.Mul(decimal.NewFromInt(int64(100 - discountPercent))).Div(hundred).Round(2)
}

func mapProductRow(row models.ProductRow) (models.ProductListItem, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(row.Price))
	if err != nil {
		return models.ProductListItem{}, fmt.Errorf("invalid price %q for product %s: %w", row.Price, row.Article, err)
	}

	priceValue, _ := price.Float64()
	discountedValue, _ := DiscountedPrice(price, row.DiscountPercent).Float64()

	return models.ProductListItem{
		Article:          row.Article,
		Name:             row.Name,
		Unit:             row.Unit,
		Price:            priceValue,
		DiscountedPrice:  discountedValue,
		SupplierID:       row.SupplierID,
		SupplierName:     row.SupplierName,
		ManufacturerID:   row.ManufacturerID,
		ManufacturerName: row.ManufacturerName,
		CategoryID:       row.CategoryID,
		CategoryName:     row.CategoryName,
		DiscountPercent:  row.DiscountPercent,
		StockQty:         row.StockQty,
		Description:      row.Description,
		Photo:            row.Photo,
	}, nil
}

func mapProductRows(rows []models.ProductRow) ([]models.ProductListItem, error) {
	items := make([]models.ProductListItem, 0, len(rows))
	for _, row := range rows {
		item, err := mapProductRow(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
