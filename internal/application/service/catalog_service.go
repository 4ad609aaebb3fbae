package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/glowdesk/glowdesk-api/internal/application/billing"
	"github.com/glowdesk/glowdesk-api/internal/cache"
	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/glowdesk/glowdesk-api/internal/domain/repository"
	"github.com/glowdesk/glowdesk-api/pkg/apperror"
	"github.com/glowdesk/glowdesk-api/pkg/pagination"
	"github.com/glowdesk/glowdesk-api/pkg/utils"
)

// CatalogService handles catalog item operations. Active listings are
// cached per kind and re-published to the billing feeds on every mutation,
// one independent stream per item kind.
type CatalogService struct {
	catalogRepo repository.CatalogRepository
	cache       cache.CatalogCache
	cacheTTL    time.Duration
	feeds       map[enum.ItemKind]*billing.Feed[billing.CatalogEntry]
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo repository.CatalogRepository, catalogCache cache.CatalogCache, cacheTTL time.Duration) *CatalogService {
	feeds := map[enum.ItemKind]*billing.Feed[billing.CatalogEntry]{
		enum.ItemKindService: billing.NewFeed[billing.CatalogEntry](),
		enum.ItemKindProduct: billing.NewFeed[billing.CatalogEntry](),
		enum.ItemKindPackage: billing.NewFeed[billing.CatalogEntry](),
	}
	return &CatalogService{
		catalogRepo: catalogRepo,
		cache:       catalogCache,
		cacheTTL:    cacheTTL,
		feeds:       feeds,
	}
}

// ProviderFor exposes the live snapshot feed for one item kind
func (s *CatalogService) ProviderFor(kind enum.ItemKind) billing.CatalogProvider {
	return s.feeds[kind]
}

// RefreshFeeds re-publishes the active catalog snapshot for every kind
func (s *CatalogService) RefreshFeeds(ctx context.Context) {
	for kind := range s.feeds {
		if err := s.refreshFeed(ctx, kind); err != nil {
			log.Printf("catalog: failed to refresh %s feed: %v", kind, err)
		}
	}
}

func (s *CatalogService) refreshFeed(ctx context.Context, kind enum.ItemKind) error {
	items, err := s.activeByKind(ctx, kind)
	if err != nil {
		return err
	}
	entries := make([]billing.CatalogEntry, 0, len(items))
	for _, item := range items {
		description := item.Name
		if item.Description != nil && *item.Description != "" {
			description = *item.Description
		}
		entries = append(entries, billing.CatalogEntry{
			Code:        item.Code,
			Description: description,
			UnitPrice:   item.UnitPrice,
			TaxRate:     item.TaxRate,
			Kind:        item.Kind,
		})
	}
	s.feeds[kind].Publish(entries)
	return nil
}

func (s *CatalogService) activeByKind(ctx context.Context, kind enum.ItemKind) ([]entity.CatalogItem, error) {
	if cached, ok, err := s.cache.Get(ctx, kind); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Printf("catalog: cache read failed: %v", err)
	}

	items, err := s.catalogRepo.ListActiveByKind(ctx, kind)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, kind, items, s.cacheTTL); err != nil {
		log.Printf("catalog: cache write failed: %v", err)
	}
	return items, nil
}

// ListActiveByKind returns the active items of one kind, cache-backed
func (s *CatalogService) ListActiveByKind(ctx context.Context, kind enum.ItemKind) ([]entity.CatalogItem, error) {
	return s.activeByKind(ctx, kind)
}

// invalidate drops the cache and republishes feeds after a mutation
func (s *CatalogService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("catalog: cache invalidation failed: %v", err)
	}
	s.RefreshFeeds(ctx)
}

func codePrefix(kind enum.ItemKind) string {
	switch kind {
	case enum.ItemKindProduct:
		return "PRD"
	case enum.ItemKindPackage:
		return "PKG"
	default:
		return "SRV"
	}
}

// CreateCatalogItemInput represents the create catalog item input
type CreateCatalogItemInput struct {
	Code            string
	Name            string
	Description     *string
	Kind            enum.ItemKind
	UnitPrice       decimal.Decimal
	TaxRate         decimal.Decimal
	DurationMinutes int
}

// CreateCatalogItem creates a new catalog item
func (s *CatalogService) CreateCatalogItem(ctx context.Context, input *CreateCatalogItemInput) (*entity.CatalogItem, error) {
	code := input.Code
	if code == "" {
		code = utils.GenerateItemCode(codePrefix(input.Kind))
	}

	existing, err := s.catalogRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Catalog item code already in use")
	}

	item := &entity.CatalogItem{
		Code:            code,
		Name:            input.Name,
		Description:     input.Description,
		Kind:            input.Kind,
		UnitPrice:       input.UnitPrice,
		TaxRate:         input.TaxRate,
		DurationMinutes: input.DurationMinutes,
		Active:          true,
	}

	if err := s.catalogRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return item, nil
}

// GetCatalogItem retrieves a catalog item by ID
func (s *CatalogService) GetCatalogItem(ctx context.Context, id uuid.UUID) (*entity.CatalogItem, error) {
	item, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Catalog item")
	}
	return item, nil
}

// ListCatalogItems lists catalog items with optional kind filter and search
func (s *CatalogService) ListCatalogItems(ctx context.Context, params *pagination.PaginationParams, kind *enum.ItemKind, search string) (*pagination.PaginatedResult[entity.CatalogItem], error) {
	items, total, err := s.catalogRepo.List(ctx, params, kind, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// UpdateCatalogItemInput represents the update catalog item input
type UpdateCatalogItemInput struct {
	ID              uuid.UUID
	Name            *string
	Description     *string
	UnitPrice       *decimal.Decimal
	TaxRate         *decimal.Decimal
	DurationMinutes *int
	Active          *bool
}

// UpdateCatalogItem updates a catalog item
func (s *CatalogService) UpdateCatalogItem(ctx context.Context, input *UpdateCatalogItemInput) (*entity.CatalogItem, error) {
	item, err := s.catalogRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Catalog item")
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	if input.UnitPrice != nil {
		item.UnitPrice = *input.UnitPrice
	}
	if input.TaxRate != nil {
		item.TaxRate = *input.TaxRate
	}
	if input.DurationMinutes != nil {
		item.DurationMinutes = *input.DurationMinutes
	}
	if input.Active != nil {
		item.Active = *input.Active
	}

	if err := s.catalogRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return item, nil
}

// DeleteCatalogItem deletes a catalog item
func (s *CatalogService) DeleteCatalogItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Catalog item")
	}

	if err := s.catalogRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}
