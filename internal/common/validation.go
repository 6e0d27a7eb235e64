package common

import (
	"math"
	"regexp"
	"strings"
	"time"

	"velodrive/internal/models"
	"velodrive/internal/query"

	"github.com/araddon/dateparse"
)

const (
	dateLayout = "2006-01-02"
	maxPage    = math.MaxInt32
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ClampInteger returns fallback for a missing value and otherwise clamps it to [min, max].
func ClampInteger(value *int, fallback, min, max int) int {
	if value == nil {
		return fallback
	}
	return clamp(*value, min, max)
}

// ClampNumber truncates a payload number and clamps it to [min, max].
// Missing or non-finite values give fallback.
func ClampNumber(n models.Number, fallback, min, max int) int {
	if !n.Finite() {
		return fallback
	}
	v := math.Trunc(n.Value)
	if v < float64(min) {
		return min
	}
	if v > float64(max) {
		return max
	}
	return int(v)
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ToNullableTrimmed trims s and turns empty text into nil.
func ToNullableTrimmed(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// positiveID accepts only whole numbers greater than zero.
func positiveID(n models.Number, field, message string) (int64, error) {
	if !n.Finite() || n.Value <= 0 || n.Value != math.Trunc(n.Value) || n.Value > math.MaxInt64 {
		return 0, NewValidationError(field, message)
	}
	return int64(n.Value), nil
}

// SanitizeProductInput validates a product payload and returns the canonical
// product. A non-empty articleOverride replaces the payload article.
func SanitizeProductInput(payload *models.ProductPayload, articleOverride string) (*models.Product, error) {
	if payload == nil {
		payload = &models.ProductPayload{}
	}

	article := strings.TrimSpace(articleOverride)
	if article == "" {
		article = trimmed(payload.Article)
	}
	if article == "" {
		return nil, NewValidationError("article", "Article is required")
	}

	name := trimmed(payload.Name)
	if name == "" {
		return nil, NewValidationError("name", "Product name is required")
	}

	unit := trimmed(payload.Unit)
	if unit == "" {
		return nil, NewValidationError("unit", "Unit is required")
	}

	if !payload.Price.Finite() || payload.Price.Value < 0 {
		return nil, NewValidationError("price", "Price must be a non-negative number")
	}

	supplierID, err := positiveID(payload.SupplierID, "supplierId", "Supplier is required")
	if err != nil {
		return nil, err
	}
	manufacturerID, err := positiveID(payload.ManufacturerID, "manufacturerId", "Manufacturer is required")
	if err != nil {
		return nil, err
	}
	categoryID, err := positiveID(payload.CategoryID, "categoryId", "Category is required")
	if err != nil {
		return nil, err
	}

	return &models.Product{
		Article:         article,
		Name:            name,
		Unit:            unit,
		Price:           payload.Price.Value,
		SupplierID:      supplierID,
		ManufacturerID:  manufacturerID,
		CategoryID:      categoryID,
		DiscountPercent: ClampNumber(payload.DiscountPercent, 0, 0, 100),
		StockQty:        ClampNumber(payload.StockQty, 0, 0, math.MaxInt32),
		Description:     ToNullableTrimmed(payload.Description),
		Photo:           ToNullableTrimmed(payload.Photo),
	}, nil
}

// NormalizeDateInput returns the date as YYYY-MM-DD. Canonical input is kept
// as is; other formats are parsed and rendered in UTC.
func NormalizeDateInput(value *string, field, label string) (string, error) {
	raw := trimmed(value)
	if raw == "" {
		return "", NewValidationError(field, label+" is required")
	}

	if isoDatePattern.MatchString(raw) {
		if _, err := time.Parse(dateLayout, raw); err != nil {
			return "", NewValidationError(field, label+" must be a valid date")
		}
		return raw, nil
	}

	parsed, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return "", NewValidationError(field, label+" must be a valid date")
	}
	return parsed.UTC().Format(dateLayout), nil
}

// SanitizeOrderInput validates an order payload and returns the canonical order.
// The delivery date may equal but not precede the order date.
func SanitizeOrderInput(payload *models.OrderPayload) (*models.Order, error) {
	if payload == nil {
		payload = &models.OrderPayload{}
	}

	orderDate, err := NormalizeDateInput(payload.OrderDate, "orderDate", "Order date")
	if err != nil {
		return nil, err
	}
	deliveryDate, err := NormalizeDateInput(payload.DeliveryDate, "deliveryDate", "Delivery date")
	if err != nil {
		return nil, err
	}

	pickupPointID, err := positiveID(payload.PickupPointID, "pickupPointId", "Pickup point is required")
	if err != nil {
		return nil, err
	}
	userID, err := positiveID(payload.UserID, "userId", "Customer is required")
	if err != nil {
		return nil, err
	}

	pickupCode := trimmed(payload.PickupCode)
	if pickupCode == "" {
		return nil, NewValidationError("pickupCode", "Pickup code is required")
	}
	status := trimmed(payload.Status)
	if status == "" {
		return nil, NewValidationError("status", "Status is required")
	}

	// YYYY-MM-DD compares chronologically as text.
	if deliveryDate < orderDate {
		return nil, NewValidationError("deliveryDate", "Delivery date cannot be earlier than order date")
	}

	return &models.Order{
		OrderDate:     orderDate,
		DeliveryDate:  deliveryDate,
		PickupPointID: pickupPointID,
		UserID:        userID,
		PickupCode:    pickupCode,
		Status:        status,
	}, nil
}

// NormalizeProductListOptions applies defaults and bounds to a product listing request.
func NormalizeProductListOptions(opts *models.ProductListOptions) models.ProductQuery {
	if opts == nil {
		opts = &models.ProductListOptions{}
	}
	sortDir := models.SortAsc
	if query.ParseDirection(string(opts.SortDir)) == query.Desc {
		sortDir = models.SortDesc
	}
	return models.ProductQuery{
		Filter: models.ProductFilter{
			Search:         trimmed(opts.Search),
			CategoryID:     opts.CategoryID,
			SupplierID:     opts.SupplierID,
			ManufacturerID: opts.ManufacturerID,
			InStockOnly:    opts.InStockOnly,
			DiscountFrom:   opts.DiscountFrom,
			DiscountTo:     opts.DiscountTo,
		},
		Page:     ClampInteger(opts.Page, 1, 1, maxPage),
		PageSize: ClampInteger(opts.PageSize, query.DefaultPageSize, 1, query.MaxPageSize),
		SortBy:   opts.SortBy,
		SortDir:  sortDir,
	}
}

// NormalizeOrderListOptions applies defaults and bounds to an order listing request.
func NormalizeOrderListOptions(opts *models.OrderListOptions) models.OrderQuery {
	if opts == nil {
		opts = &models.OrderListOptions{}
	}
	sortDir := models.SortAsc
	if query.ParseDirection(string(opts.SortDir)) == query.Desc {
		sortDir = models.SortDesc
	}
	return models.OrderQuery{
		Filter: models.OrderFilter{
			Search:        trimmed(opts.Search),
			Status:        trimmed(opts.Status),
			PickupPointID: opts.PickupPointID,
			UserID:        opts.UserID,
		},
		Page:     ClampInteger(opts.Page, 1, 1, maxPage),
		PageSize: ClampInteger(opts.PageSize, query.DefaultPageSize, 1, query.MaxPageSize),
		SortBy:   opts.SortBy,
		SortDir:  sortDir,
	}
}
