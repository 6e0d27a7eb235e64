package repositories

import (
	"velodrive/internal/models"
	"velodrive/internal/query"
)

var orderSortColumns = query.NewSortColumns("o.id", map[string]string{
	string(models.OrderSortID):           "o.id",
	string(models.OrderSortOrderDate):    "o.order_date",
	string(models.OrderSortDeliveryDate): "o.delivery_date",
	string(models.OrderSortStatus):       "o.status",
})

var orderSelect = query.From("orders o").
	Select(
		"o.id",
		"o.order_date::text AS order_date",
		"o.delivery_date::text AS delivery_date",
		"o.pickup_point_id",
		pickupPointLabelSQL+" AS pickup_point_label",
		"o.user_id",
		"u.full_name AS user_full_name",
		"o.pickup_code",
		"o.status",
	).
	Join("INNER JOIN pickup_points pp ON pp.id = o.pickup_point_id").
	Join("INNER JOIN users u ON u.id = o.user_id")

func orderConditions(f models.OrderFilter) []query.Condition {
	var conds []query.Condition

	if f.Search != "" {
		conds = append(conds, query.ILikeAny(query.Contains(f.Search),
			"o.id::text",
			"o.pickup_code",
			"o.status",
			"u.full_name",
			"pp.city",
			"pp.street",
		))
	}
	if f.Status != "" {
		conds = append(conds, query.Eq("o.status", f.Status))
	}
	if f.PickupPointID != nil {
		conds = append(conds, query.Eq("o.pickup_point_id", *f.PickupPointID))
	}
	if f.UserID != nil {
		conds = append(conds, query.Eq("o.user_id", *f.UserID))
	}

	return conds
}

func orderListStatement(q models.OrderQuery) query.Statement {
	return orderSelect.
		Where(orderConditions(q.Filter)...).
		OrderBy(orderSortColumns.Resolve(string(q.SortBy)), query.ParseDirection(string(q.SortDir))).
		OrderBy("o.id", query.Asc).
		Paginate(query.Page{Number: q.Page, Size: q.PageSize}).
		Build()
}

func orderCountStatement(f models.OrderFilter) query.Statement {
	return orderSelect.
		Where(orderConditions(f)...).
		Count().
		Build()
}

func orderByIDStatement(id int64) query.Statement {
	return orderSelect.
		Where(query.Eq("o.id", id)).
		Build()
}
