package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"velodrive/internal/common"
	"velodrive/internal/models"
	"velodrive/internal/repositories"

	"golang.org/x/sync/errgroup"
)

type OrderService interface {
	List(ctx context.Context, opts *models.OrderListOptions) (*models.OrderListResult, error)
	GetByID(ctx context.Context, id int64) (*models.OrderListItem, error)
	Create(ctx context.Context, payload *models.OrderPayload) (*models.OrderListItem, error)
	Update(ctx context.Context, id int64, payload *models.OrderPayload) (*models.OrderListItem, error)
	Delete(ctx context.Context, id int64) error
}

type orderService struct {
	orderRepo repositories.OrderRepository
	lookupSvc LookupService
}

func NewOrderService(orderRepo repositories.OrderRepository, lookupSvc LookupService) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		lookupSvc: lookupSvc,
	}
}

func (s *orderService) List(ctx context.Context, opts *models.OrderListOptions) (*models.OrderListResult, error) {
	q := common.NormalizeOrderListOptions(opts)

	var (
		items   []models.OrderListItem
		total   int
		lookups *models.OrderLookups
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		items, err = s.orderRepo.List(gctx, q)
		return err
	})
	g.Go(func() (err error) {
		total, err = s.orderRepo.Count(gctx, q.Filter)
		return err
	})
	g.Go(func() (err error) {
		lookups, err = s.lookupSvc.OrderLookups(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	if items == nil {
		items = []models.OrderListItem{}
	}

	return &models.OrderListResult{
		Items:    items,
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
		Lookups:  *lookups,
	}, nil
}

func (s *orderService) GetByID(ctx context.Context, id int64) (*models.OrderListItem, error) {
	if id <= 0 {
		return nil, common.NewValidationError("id", "Order id must be a positive integer")
	}
	return s.orderRepo.GetByID(ctx, id)
}

// Create stores a new order under the next free id (current maximum + 1).
func (s *orderService) Create(ctx context.Context, payload *models.OrderPayload) (*models.OrderListItem, error) {
	order, err := common.SanitizeOrderInput(payload)
	if err != nil {
		return nil, err
	}

	max, err := s.orderRepo.MaxID(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate order id: %w", err)
	}
	order.ID = max + 1

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	log.Printf("ORDER_SERVICE: created order %d", order.ID)
	s.lookupSvc.InvalidateOrderLookups(ctx)

	return s.reload(ctx, order.ID)
}

func (s *orderService) Update(ctx context.Context, id int64, payload *models.OrderPayload) (*models.OrderListItem, error) {
	if id <= 0 {
		return nil, common.NewValidationError("id", "Order id must be a positive integer")
	}

	order, err := common.SanitizeOrderInput(payload)
	if err != nil {
		return nil, err
	}
	order.ID = id

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	s.lookupSvc.InvalidateOrderLookups(ctx)

	return s.reload(ctx, id)
}

func (s *orderService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return common.NewValidationError("id", "Order id must be a positive integer")
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("ORDER_SERVICE: deleted order %d", id)
	s.lookupSvc.InvalidateOrderLookups(ctx)
	return nil
}

func (s *orderService) reload(ctx context.Context, id int64) (*models.OrderListItem, error) {
	item, err := s.orderRepo.GetByID(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("order %d: %w", id, common.ErrCreatedNotLoaded)
	}
	return item, err
}
