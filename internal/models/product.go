package models

// ProductSortBy names a sortable column of the product listing.
type ProductSortBy string

const (
	ProductSortName             ProductSortBy = "name"
	ProductSortPrice            ProductSortBy = "price"
	ProductSortDiscountPercent  ProductSortBy = "discountPercent"
	ProductSortStockQty         ProductSortBy = "stockQty"
	ProductSortCategoryName     ProductSortBy = "categoryName"
	ProductSortSupplierName     ProductSortBy = "supplierName"
	ProductSortManufacturerName ProductSortBy = "manufacturerName"
)

// ArticlePrefix is prepended to generated product articles.
const ArticlePrefix = "AUTO-"

// ProductListOptions is the raw listing request as received from the caller.
// Every field is optional.
type ProductListOptions struct {
	Page           *int          `json:"page,omitempty"`
	PageSize       *int          `json:"pageSize,omitempty"`
	Search         *string       `json:"search,omitempty"` // Matches article, name, unit, description and related names
	CategoryID     *int64        `json:"categoryId,omitempty"`
	SupplierID     *int64        `json:"supplierId,omitempty"`
	ManufacturerID *int64        `json:"manufacturerId,omitempty"`
	InStockOnly    bool          `json:"inStockOnly,omitempty"`
	DiscountFrom   *int          `json:"discountFrom,omitempty"` // Inclusive lower discount bound
	DiscountTo     *int          `json:"discountTo,omitempty"`   // Inclusive upper discount bound
	SortBy         ProductSortBy `json:"sortBy,omitempty"`
	SortDir        SortDir       `json:"sortDir,omitempty"`
}

// DefaultsOnly keeps paging and drops every filter and sort choice.
func (o *ProductListOptions) DefaultsOnly() *ProductListOptions {
	if o == nil {
		return &ProductListOptions{}
	}
	return &ProductListOptions{
		Page:     o.Page,
		PageSize: o.PageSize,
		SortBy:   ProductSortName,
		SortDir:  SortAsc,
	}
}

// ProductFilter is the normalized set of product predicates.
type ProductFilter struct {
	Search         string
	CategoryID     *int64
	SupplierID     *int64
	ManufacturerID *int64
	InStockOnly    bool
	DiscountFrom   *int
	DiscountTo     *int
}

// ProductQuery is a normalized product listing request.
type ProductQuery struct {
	Filter   ProductFilter
	Page     int
	PageSize int
	SortBy   ProductSortBy
	SortDir  SortDir
}

// ProductPayload is a product write request before sanitization.
type ProductPayload struct {
	Article         *string `json:"article,omitempty"`
	Name            *string `json:"name,omitempty"`
	Unit            *string `json:"unit,omitempty"`
	Price           Number  `json:"price"`
	SupplierID      Number  `json:"supplierId"`
	ManufacturerID  Number  `json:"manufacturerId"`
	CategoryID      Number  `json:"categoryId"`
	DiscountPercent Number  `json:"discountPercent"`
	StockQty        Number  `json:"stockQty"`
	Description     *string `json:"description,omitempty"`
	Photo           *string `json:"photo,omitempty"`
}

// Product is a sanitized product ready to be written.
type Product struct {
	Article         string  `db:"article"`
	Name            string  `db:"name"`
	Unit            string  `db:"unit"`
	Price           float64 `db:"price"`
	SupplierID      int64   `db:"supplier_id"`
	ManufacturerID  int64   `db:"manufacturer_id"`
	CategoryID      int64   `db:"category_id"`
	DiscountPercent int     `db:"discount_percent"`
	StockQty        int     `db:"stock_qty"`
	Description     *string `db:"description"`
	Photo           *string `db:"photo"`
}

// ProductRow is a product listing row as stored; price arrives as text.
type ProductRow struct {
	Article          string
	Name             string
	Unit             string
	Price            string
	SupplierID       int64
	SupplierName     string
	ManufacturerID   int64
	ManufacturerName string
	CategoryID       int64
	CategoryName     string
	DiscountPercent  int
	StockQty         int
	Description      *string
	Photo            *string
}

// ProductListItem is a product as returned to callers.
type ProductListItem struct {
	Article          string  `json:"article"`
	Name             string  `json:"name"`
	Unit             string  `json:"unit"`
	Price            float64 `json:"price"`
	DiscountedPrice  float64 `json:"discountedPrice"`
	SupplierID       int64   `json:"supplierId"`
	SupplierName     string  `json:"supplierName"`
	ManufacturerID   int64   `json:"manufacturerId"`
	ManufacturerName string  `json:"manufacturerName"`
	CategoryID       int64   `json:"categoryId"`
	CategoryName     string  `json:"categoryName"`
	DiscountPercent  int     `json:"discountPercent"`
	StockQty         int     `json:"stockQty"`
	Description      *string `json:"description"`
	Photo            *string `json:"photo"`
}

// ProductLookups are the option sets offered next to a product listing.
type ProductLookups struct {
	Categories    []LookupItem `json:"categories"`
	Suppliers     []LookupItem `json:"suppliers"`
	Manufacturers []LookupItem `json:"manufacturers"`
}

// ProductListResult is one page of products plus the listing metadata.
type ProductListResult struct {
	Items    []ProductListItem `json:"items"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
	Lookups  ProductLookups    `json:"lookups"`
}
