package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	domainRepo "github.com/glowdesk/glowdesk-api/internal/domain/repository"
	"github.com/glowdesk/glowdesk-api/pkg/pagination"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) domainRepo.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) Create(ctx context.Context, item *entity.CatalogItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *catalogRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CatalogItem, error) {
	var item entity.CatalogItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *catalogRepository) GetByCode(ctx context.Context, code string) (*entity.CatalogItem, error) {
	var item entity.CatalogItem
	err := r.db.WithContext(ctx).First(&item, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *catalogRepository) Update(ctx context.Context, item *entity.CatalogItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *catalogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.CatalogItem{}, "id = ?", id).Error
}

func (r *catalogRepository) List(ctx context.Context, params *pagination.PaginationParams, kind *enum.ItemKind, search string) ([]entity.CatalogItem, int64, error) {
	var items []entity.CatalogItem
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.CatalogItem{})

	if kind != nil {
		query = query.Where("kind = ?", *kind)
	}

	if search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("name ASC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&items).Error

	return items, total, err
}

func (r *catalogRepository) ListActiveByKind(ctx context.Context, kind enum.ItemKind) ([]entity.CatalogItem, error) {
	var items []entity.CatalogItem
	err := r.db.WithContext(ctx).
		Where("kind = ? AND active = ?", kind, true).
		Order("name ASC").
		Find(&items).Error
	return items, err
}
