package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"velodrive/internal/common"
	"velodrive/internal/models"
	"velodrive/internal/repositories"

	"golang.org/x/sync/errgroup"
)

type ProductService interface {
	List(ctx context.Context, opts *models.ProductListOptions) (*models.ProductListResult, error)
	GetByArticle(ctx context.Context, article string) (*models.ProductListItem, error)
	Create(ctx context.Context, payload *models.ProductPayload) (*models.ProductListItem, error)
	Update(ctx context.Context, article string, payload *models.ProductPayload) (*models.ProductListItem, error)
	Delete(ctx context.Context, article string) error
}

type productService struct {
	productRepo repositories.ProductRepository
	lookupSvc   LookupService
}

func NewProductService(productRepo repositories.ProductRepository, lookupSvc LookupService) ProductService {
	return &productService{
		productRepo: productRepo,
		lookupSvc:   lookupSvc,
	}
}

// List returns one page of products with the total count and the lookup
// sets. The three reads run concurrently.
func (s *productService) List(ctx context.Context, opts *models.ProductListOptions) (*models.ProductListResult, error) {
	q := common.NormalizeProductListOptions(opts)

	var (
		rows    []models.ProductRow
		total   int
		lookups *models.ProductLookups
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rows, err = s.productRepo.List(gctx, q)
		return err
	})
	g.Go(func() (err error) {
		total, err = s.productRepo.Count(gctx, q.Filter)
		return err
	})
	g.Go(func() (err error) {
		lookups, err = s.lookupSvc.ProductLookups(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	items, err := mapProductRows(rows)
	if err != nil {
		return nil, err
	}

	return &models.ProductListResult{
		Items:    items,
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
		Lookups:  *lookups,
	}, nil
}

func (s *productService) GetByArticle(ctx context.Context, article string) (*models.ProductListItem, error) {
	article = strings.TrimSpace(article)
	if article == "" {
		return nil, common.NewValidationError("article", "Article is required")
	}

	row, err := s.productRepo.GetByArticle(ctx, article)
	if err != nil {
		return nil, err
	}
	item, err := mapProductRow(*row)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create stores a new product. An empty article is replaced by the next
// generated AUTO-n value.
func (s *productService) Create(ctx context.Context, payload *models.ProductPayload) (*models.ProductListItem, error) {
	if payload == nil {
		payload = &models.ProductPayload{}
	}

	article := strings.TrimSpace(common.SafeString(payload.Article))
	if article == "" {
		generated, err := s.nextArticle(ctx)
		if err != nil {
			return nil, err
		}
		article = generated
	}

	product, err := common.SanitizeProductInput(payload, article)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	log.Printf("PRODUCT_SERVICE: created product %s", product.Article)

	return s.reload(ctx, product.Article)
}

// Update replaces every mutable field of the product. The article in the
// payload is ignored.
func (s *productService) Update(ctx context.Context, article string, payload *models.ProductPayload) (*models.ProductListItem, error) {
	article = strings.TrimSpace(article)
	if article == "" {
		return nil, common.NewValidationError("article", "Article is required")
	}
	if payload == nil {
		payload = &models.ProductPayload{}
	}

	product, err := common.SanitizeProductInput(payload, article)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.reload(ctx, article)
}

func (s *productService) Delete(ctx context.Context, article string) error {
	article = strings.TrimSpace(article)
	if article == "" {
		return common.NewValidationError("article", "Article is required")
	}

	if err := s.productRepo.Delete(ctx, article); err != nil {
		return err
	}
	log.Printf("PRODUCT_SERVICE: deleted product %s", article)
	return nil
}

func (s *productService) nextArticle(ctx context.Context) (string, error) {
	max, err := s.productRepo.MaxArticleNumber(ctx)
	if err != nil {
		return "", fmt.Errorf("generate article: %w", err)
	}
	return fmt.Sprintf("%s%d", models.ArticlePrefix, max+1), nil
}

func (s *productService) reload(ctx context.Context, article string) (*models.ProductListItem, error) {
	item, err := s.GetByArticle(ctx, article)
	if errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("product %s: %w", article, common.ErrCreatedNotLoaded)
	}
	return item, err
}
