package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/campusfood/internal/domain/model"
	"github.com/polkiloo/campusfood/internal/server/http/dto"
	"github.com/polkiloo/campusfood/internal/usecase"
)

// CatalogHandler serves vendors and menus to students and menu management to vendors.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// OpenVendors handles GET /api/student/vendors.
func (h *CatalogHandler) OpenVendors(c *gin.Context) {
	vendors, err := h.facade.OpenVendors(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]dto.VendorResponse, 0, len(vendors))
	for i := range vendors {
		resp = append(resp, dto.NewVendorResponse(&vendors[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Vendor handles GET /api/student/vendors/:id.
func (h *CatalogHandler) Vendor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	vendor, err := h.facade.Vendor(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewVendorResponse(vendor))
}

// Menu handles GET /api/student/menu/:vendorId.
func (h *CatalogHandler) Menu(c *gin.Context) {
	id, ok := pathID(c, "vendorId")
	if !ok {
		return
	}
	items, err := h.facade.Menu(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, menuResponse(items))
}

// VendorMenu handles GET /api/vendor/menu.
func (h *CatalogHandler) VendorMenu(c *gin.Context) {
	items, err := h.facade.VendorMenu(c.Request.Context(), CurrentAccountID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, menuResponse(items))
}

// AddMenuItem handles POST /api/vendor/menu.
func (h *CatalogHandler) AddMenuItem(c *gin.Context) {
	in, ok := bindMenuItem(c)
	if !ok {
		return
	}
	item, err := h.facade.AddMenuItem(c.Request.Context(), CurrentAccountID(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewMenuItemResponse(*item))
}

// UpdateMenuItem handles PUT /api/vendor/menu/:id.
func (h *CatalogHandler) UpdateMenuItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	in, ok := bindMenuItem(c)
	if !ok {
		return
	}
	item, err := h.facade.UpdateMenuItem(c.Request.Context(), CurrentAccountID(c), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMenuItemResponse(*item))
}

// DeleteMenuItem handles DELETE /api/vendor/menu/:id.
func (h *CatalogHandler) DeleteMenuItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.DeleteMenuItem(c.Request.Context(), CurrentAccountID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item removed"})
}

// UpdateAvailability handles PATCH /api/vendor/availability.
func (h *CatalogHandler) UpdateAvailability(c *gin.Context) {
	var req dto.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid availability payload")
		return
	}
	vendor, err := h.facade.UpdateAvailability(c.Request.Context(), CurrentAccountID(c), model.Availability{
		IsOpen:       req.IsOpen,
		OpeningHours: req.OpeningHours,
		ClosingHours: req.ClosingHours,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewVendorResponse(vendor))
}

// Stats handles GET /api/vendor/stats.
func (h *CatalogHandler) Stats(c *gin.Context) {
	stats, err := h.facade.VendorStats(c.Request.Context(), CurrentAccountID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStatsResponse(stats))
}

func bindMenuItem(c *gin.Context) (usecase.MenuItemInput, bool) {
	var req dto.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Please provide name and price")
		return usecase.MenuItemInput{}, false
	}
	return usecase.MenuItemInput{
		Name:        req.Name,
		Price:       *req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		IsAvailable: req.IsAvailable,
	}, true
}

func menuResponse(items []model.MenuItem) []dto.MenuItemResponse {
	resp := make([]dto.MenuItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, dto.NewMenuItemResponse(item))
	}
	return resp
}
