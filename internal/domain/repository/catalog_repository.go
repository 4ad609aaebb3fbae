package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/glowdesk/glowdesk-api/pkg/pagination"
)

// CatalogRepository defines the interface for catalog item data operations
type CatalogRepository interface {
	Create(ctx context.Context, item *entity.CatalogItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CatalogItem, error)
	GetByCode(ctx context.Context, code string) (*entity.CatalogItem, error)
	Update(ctx context.Context, item *entity.CatalogItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, kind *enum.ItemKind, search string) ([]entity.CatalogItem, int64, error)
	// ListActiveByKind returns every active item of one kind, for billing pickers.
	ListActiveByKind(ctx context.Context, kind enum.ItemKind) ([]entity.CatalogItem, error)
}
