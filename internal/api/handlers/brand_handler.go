// internal/api/handlers/brand_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seoulbrew/sitescope/internal/service"
)

type BrandHandler struct {
	service *service.BrandService
}

func NewBrandHandler(service *service.BrandService) *BrandHandler {
	return &BrandHandler{service: service}
}

func (h *BrandHandler) ListBrands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"brands": h.service.Brands(c.Request.Context())})
}

func (h *BrandHandler) GetProfile(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Request.Context(), c.Param("brand"))
	if err != nil {
		c.JSON(queryStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ListProfiles aggregates the active brand selection (all brands when the
// `active` param is absent), for the comparison/radar view.
func (h *BrandHandler) ListProfiles(c *gin.Context) {
	active := parseStringList(c, "active")

	profiles, err := h.service.ListProfiles(c.Request.Context(), active)
	if err != nil {
		c.JSON(queryStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}
