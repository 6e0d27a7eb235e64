package models

// OrderSortBy names a sortable column of the order listing.
type OrderSortBy string

const (
	OrderSortID           OrderSortBy = "id"
	OrderSortOrderDate    OrderSortBy = "orderDate"
	OrderSortDeliveryDate OrderSortBy = "deliveryDate"
	OrderSortStatus       OrderSortBy = "status"
)

// Canonical order statuses. They are always offered as status options.
const (
	OrderStatusNew       = "New"
	OrderStatusCompleted = "Completed"
)

// OrderListOptions is the raw order listing request.
type OrderListOptions struct {
	Page          *int        `json:"page,omitempty"`
	PageSize      *int        `json:"pageSize,omitempty"`
	Search        *string     `json:"search,omitempty"`
	Status        *string     `json:"status,omitempty"` // Exact match after trimming
	PickupPointID *int64      `json:"pickupPointId,omitempty"`
	UserID        *int64      `json:"userId,omitempty"`
	SortBy        OrderSortBy `json:"sortBy,omitempty"`
	SortDir       SortDir     `json:"sortDir,omitempty"`
}

// OrderFilter is the normalized set of order predicates.
type OrderFilter struct {
	Search        string
	Status        string
	PickupPointID *int64
	UserID        *int64
}

// OrderQuery is a normalized order listing request.
type OrderQuery struct {
	Filter   OrderFilter
	Page     int
	PageSize int
	SortBy   OrderSortBy
	SortDir  SortDir
}

// OrderPayload is an order write request before sanitization.
type OrderPayload struct {
	OrderDate     *string `json:"orderDate,omitempty"`
	DeliveryDate  *string `json:"deliveryDate,omitempty"`
	PickupPointID Number  `json:"pickupPointId"`
	UserID        Number  `json:"userId"`
	PickupCode    *string `json:"pickupCode,omitempty"`
	Status        *string `json:"status,omitempty"`
}

// Order is a sanitized order ready to be written. Dates are YYYY-MM-DD.
type Order struct {
	ID            int64  `db:"id"`
	OrderDate     string `db:"order_date"`
	DeliveryDate  string `db:"delivery_date"`
	PickupPointID int64  `db:"pickup_point_id"`
	UserID        int64  `db:"user_id"`
	PickupCode    string `db:"pickup_code"`
	Status        string `db:"status"`
}

// OrderListItem is an order as returned to callers.
type OrderListItem struct {
	ID               int64  `json:"id"`
	OrderDate        string `json:"orderDate"`
	DeliveryDate     string `json:"deliveryDate"`
	PickupPointID    int64  `json:"pickupPointId"`
	PickupPointLabel string `json:"pickupPointLabel"`
	UserID           int64  `json:"userId"`
	UserFullName     string `json:"userFullName"`
	PickupCode       string `json:"pickupCode"`
	Status           string `json:"status"`
}

// OrderLookups are the option sets offered next to an order listing.
type OrderLookups struct {
	Statuses     []string                `json:"statuses"`
	PickupPoints []PickupPointLookupItem `json:"pickupPoints"`
	Users        []UserLookupItem        `json:"users"`
}

// OrderListResult is one page of orders plus the listing metadata.
type OrderListResult struct {
	Items    []OrderListItem `json:"items"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
	Lookups  OrderLookups    `json:"lookups"`
}
