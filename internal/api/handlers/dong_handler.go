// internal/api/handlers/dong_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/seoulbrew/sitescope/internal/domain"
	"github.com/seoulbrew/sitescope/internal/service"
)

type DongHandler struct {
	service *service.DongService
}

func NewDongHandler(service *service.DongService) *DongHandler {
	return &DongHandler{service: service}
}

// parseStringList supports both repeated params and comma-separated values:
//
//	?brand=A&brand=B
//	?brand=A,B
func parseStringList(c *gin.Context, param string) []string {
	raw := c.QueryArray(param)
	if len(raw) == 0 {
		if single := strings.TrimSpace(c.Query(param)); single != "" {
			raw = []string{single}
		}
	}

	var values []string
	seen := make(map[string]struct{})
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if _, ok := seen[part]; ok {
				continue
			}
			seen[part] = struct{}{}
			values = append(values, part)
		}
	}
	return values
}

func parseTopN(c *gin.Context) int {
	topN, err := strconv.Atoi(c.DefaultQuery("top_n", "0"))
	if err != nil || topN < 0 {
		return 0
	}
	return topN
}

func queryStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownMetric), errors.Is(err, domain.ErrUnknownBrand):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDongNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *DongHandler) GetDong(c *gin.Context) {
	dong, err := h.service.GetDong(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.JSON(queryStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dong)
}

func (h *DongHandler) ListDongs(c *gin.Context) {
	filter := domain.DongFilter{
		DongName:  strings.TrimSpace(c.Query("dong")),
		DongNames: parseStringList(c, "dongs"),
		Brand:     strings.TrimSpace(c.Query("brand")),
	}
	sortBy := domain.Metric(c.DefaultQuery("sort_by", string(domain.MetricTotalBrandCount)))

	dongs, err := h.service.ListDongs(c.Request.Context(), filter, sortBy, parseTopN(c))
	if err != nil {
		c.JSON(queryStatus(err), gin.H{"error": err.Error()})
		return
	}

	// Zero rows is a valid result, not an error; keep the payload shape.
	if dongs == nil {
		dongs = make([]*domain.DongStats, 0)
	}
	c.JSON(http.StatusOK, gin.H{
		"dongs": dongs,
		"total": len(dongs),
	})
}

func (h *DongHandler) GetVitalityDistribution(c *gin.Context) {
	brands := parseStringList(c, "brand")

	distribution, err := h.service.VitalityDistribution(c.Request.Context(), brands)
	if err != nil {
		c.JSON(queryStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"distribution": distribution})
}

func (h *DongHandler) GetMapPoints(c *gin.Context) {
	brands := parseStringList(c, "brand")
	dongs := parseStringList(c, "dongs")

	points := h.service.MapPoints(c.Request.Context(), brands, dongs)
	c.JSON(http.StatusOK, gin.H{
		"points": points,
		"total":  len(points),
	})
}
