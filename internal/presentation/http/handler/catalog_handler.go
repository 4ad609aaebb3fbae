package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/glowdesk/glowdesk-api/internal/application/service"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/dto/request"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/dto/response"
	"github.com/glowdesk/glowdesk-api/pkg/apperror"
)

// CatalogHandler handles catalog item HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// List handles listing catalog items with an optional kind filter
func (h *CatalogHandler) List(c *gin.Context) {
	var kind *enum.ItemKind
	if raw := c.Query("kind"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 || value > 2 {
			response.BadRequest(c, "Invalid kind filter")
			return
		}
		k := enum.ItemKind(value)
		kind = &k
	}

	result, err := h.catalogService.ListCatalogItems(c.Request.Context(), pageParams(c), kind, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Catalog items retrieved successfully", result)
}

// Create handles creating a catalog item
func (h *CatalogHandler) Create(c *gin.Context) {
	var req request.CreateCatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		response.Error(c, apperror.NewValidationError(errs))
		return
	}

	item, err := h.catalogService.CreateCatalogItem(c.Request.Context(), &service.CreateCatalogItemInput{
		Code:            req.Code,
		Name:            req.Name,
		Description:     req.Description,
		Kind:            enum.ItemKind(req.Kind),
		UnitPrice:       req.UnitPrice,
		TaxRate:         req.TaxRate,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Catalog item created successfully", item)
}

// Get handles retrieving a catalog item
func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid catalog item ID")
		return
	}

	item, err := h.catalogService.GetCatalogItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Catalog item retrieved successfully", item)
}

// Update handles updating a catalog item
func (h *CatalogHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid catalog item ID")
		return
	}

	var req request.UpdateCatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		response.Error(c, apperror.NewValidationError(errs))
		return
	}

	item, err := h.catalogService.UpdateCatalogItem(c.Request.Context(), &service.UpdateCatalogItemInput{
		ID:              id,
		Name:            req.Name,
		Description:     req.Description,
		UnitPrice:       req.UnitPrice,
		TaxRate:         req.TaxRate,
		DurationMinutes: req.DurationMinutes,
		Active:          req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Catalog item updated successfully", item)
}

// Delete handles deleting a catalog item
func (h *CatalogHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid catalog item ID")
		return
	}

	if err := h.catalogService.DeleteCatalogItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
