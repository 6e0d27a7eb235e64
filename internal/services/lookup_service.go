package services

import (
	"context"
	"log"
	"strings"
	"time"

	"velodrive/internal/caching"
	"velodrive/internal/models"
	"velodrive/internal/repositories"

	"golang.org/x/sync/errgroup"
)

// LookupService assembles the option sets shown next to listings.
type LookupService interface {
	ProductLookups(ctx context.Context) (*models.ProductLookups, error)
	OrderLookups(ctx context.Context) (*models.OrderLookups, error)
	InvalidateOrderLookups(ctx context.Context)
	Refresh(ctx context.Context) error
}

type lookupService struct {
	repo     repositories.LookupRepository
	cacheSvc caching.CacheService
	ttl      time.Duration
}

// NewLookupService creates a lookup service. cacheSvc may be nil, in which
// case every call reads storage.
func NewLookupService(repo repositories.LookupRepository, cacheSvc caching.CacheService, ttl time.Duration) LookupService {
	return &lookupService{
		repo:     repo,
		cacheSvc: cacheSvc,
		ttl:      ttl,
	}
}

func (s *lookupService) ProductLookups(ctx context.Context) (*models.ProductLookups, error) {
	if s.cacheSvc != nil {
		cached, err := s.cacheSvc.GetProductLookups(ctx)
		if err != nil {
			log.Printf("LOOKUP_SERVICE: product lookups cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	lookups, err := s.loadProductLookups(ctx)
	if err != nil {
		return nil, err
	}
	s.storeProductLookups(ctx, lookups)
	return lookups, nil
}

func (s *lookupService) OrderLookups(ctx context.Context) (*models.OrderLookups, error) {
	if s.cacheSvc != nil {
		cached, err := s.cacheSvc.GetOrderLookups(ctx)
		if err != nil {
			log.Printf("LOOKUP_SERVICE: order lookups cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	lookups, err := s.loadOrderLookups(ctx)
	if err != nil {
		return nil, err
	}
	s.storeOrderLookups(ctx, lookups)
	return lookups, nil
}

// InvalidateOrderLookups drops cached order lookups after an order write.
func (s *lookupService) InvalidateOrderLookups(ctx context.Context) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.InvalidateOrderLookups(ctx); err != nil {
		log.Printf("LOOKUP_SERVICE: failed to invalidate order lookups: %v", err)
	}
}

// Refresh reloads both lookup sets from storage and replaces the cached copies.
func (s *lookupService) Refresh(ctx context.Context) error {
	products, err := s.loadProductLookups(ctx)
	if err != nil {
		return err
	}
	orders, err := s.loadOrderLookups(ctx)
	if err != nil {
		return err
	}
	s.storeProductLookups(ctx, products)
	s.storeOrderLookups(ctx, orders)
	return nil
}

func (s *lookupService) loadProductLookups(ctx context.Context) (*models.ProductLookups, error) {
	var lookups models.ProductLookups
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		lookups.Categories, err = s.repo.Categories(gctx)
		return err
	})
	g.Go(func() (err error) {
		lookups.Suppliers, err = s.repo.Suppliers(gctx)
		return err
	})
	g.Go(func() (err error) {
		lookups.Manufacturers, err = s.repo.Manufacturers(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &lookups, nil
}

func (s *lookupService) loadOrderLookups(ctx context.Context) (*models.OrderLookups, error) {
	var (
		lookups  models.OrderLookups
		statuses []string
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		statuses, err = s.repo.Statuses(gctx)
		return err
	})
	g.Go(func() (err error) {
		lookups.PickupPoints, err = s.repo.PickupPoints(gctx)
		return err
	})
	g.Go(func() (err error) {
		lookups.Users, err = s.repo.Users(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	lookups.Statuses = MergeStatuses(statuses)
	return &lookups, nil
}

func (s *lookupService) storeProductLookups(ctx context.Context, lookups *models.ProductLookups) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.SetProductLookups(ctx, lookups, s.ttl); err != nil {
		log.Printf("LOOKUP_SERVICE: failed to cache product lookups: %v", err)
	}
}

func (s *lookupService) storeOrderLookups(ctx context.Context, lookups *models.OrderLookups) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.SetOrderLookups(ctx, lookups, s.ttl); err != nil {
		log.Printf("LOOKUP_SERVICE: failed to cache order lookups: %v", err)
	}
}

// MergeStatuses deduplicates the stored statuses and adds the canonical
// ones: "New" always comes first, "Completed" is appended unless present.
func MergeStatuses(stored []string) []string {
	seen := map[string]bool{models.OrderStatusNew: true}
	merged := []string{models.OrderStatusNew}

	for _, status := range stored {
		status = strings.TrimSpace(status)
		if status == "" || seen[status] {
			continue
		}
		seen[status] = true
		merged = append(merged, status)
	}

	if !seen[models.OrderStatusCompleted] {
		merged = append(merged, models.OrderStatusCompleted)
	}
	return merged
}
