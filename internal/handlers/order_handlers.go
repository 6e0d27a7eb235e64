package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"velodrive/internal/common"
	"velodrive/internal/models"
	"velodrive/internal/services"

	"github.com/labstack/echo/v4"
)

type OrderHandlers struct {
	orderService services.OrderService
}

func NewOrderHandlers(orderService services.OrderService) *OrderHandlers {
	return &OrderHandlers{orderService: orderService}
}

type orderListResponse struct {
	OK bool `json:"ok"`
	*models.OrderListResult
}

func orderIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewValidationError("id", "Order id must be a positive integer")
	}
	return id, nil
}

func (h *OrderHandlers) GetOrders(c echo.Context) error {
	opts := &models.OrderListOptions{
		Page:          queryInt(c, "page"),
		PageSize:      queryInt(c, "pageSize"),
		Search:        queryString(c, "search"),
		Status:        queryString(c, "status"),
		PickupPointID: queryID(c, "pickupPointId"),
		UserID:        queryID(c, "userId"),
		SortBy:        models.OrderSortBy(c.QueryParam("sortBy")),
		SortDir:       models.SortDir(c.QueryParam("sortDir")),
	}

	result, err := h.orderService.List(c.Request().Context(), opts)
	if err != nil {
		return common.SendFailure(c, err)
	}
	return c.JSON(http.StatusOK, orderListResponse{OK: true, OrderListResult: result})
}

func (h *OrderHandlers) GetOrder(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return common.SendFailure(c, err)
	}

	item, err := h.orderService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendFailure(c, err)
	}
	return sendItem(c, http.StatusOK, item)
}

func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	var payload models.OrderPayload
	if err := c.Bind(&payload); err != nil {
		return common.SendValidationError(c, "", "Invalid request format")
	}

	item, err := h.orderService.Create(c.Request().Context(), &payload)
	if err != nil {
		return common.SendFailure(c, err)
	}
	return sendItem(c, http.StatusCreated, item)
}

func (h *OrderHandlers) UpdateOrder(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return common.SendFailure(c, err)
	}

	var payload models.OrderPayload
	if err := c.Bind(&payload); err != nil {
		return common.SendValidationError(c, "", "Invalid request format")
	}

	item, err := h.orderService.Update(c.Request().Context(), id, &payload)
	if err != nil {
		return common.SendFailure(c, err)
	}
	return sendItem(c, http.StatusOK, item)
}

func (h *OrderHandlers) DeleteOrder(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return common.SendFailure(c, err)
	}

	if err := h.orderService.Delete(c.Request().Context(), id); err != nil {
		return common.SendFailure(c, err)
	}
	return sendOK(c)
}
