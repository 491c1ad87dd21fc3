// internal/api/handlers/recommend_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/seoulbrew/sitescope/internal/domain"
	"github.com/seoulbrew/sitescope/internal/service"
)

type RecommendHandler struct {
	service *service.RecommendService
}

func NewRecommendHandler(service *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{service: service}
}

func (h *RecommendHandler) GetRecommendations(c *gin.Context) {
	filter := domain.RecommendFilter{
		Brand:     strings.TrimSpace(c.Query("brand")),
		DongNames: parseStringList(c, "dongs"),
	}
	sortBy := domain.Metric(c.DefaultQuery("sort_by", string(domain.MetricAttractivenessScore)))
	topN := parseTopN(c)

	if c.DefaultQuery("grouped", "false") == "true" {
		groups, err := h.service.RecommendGrouped(c.Request.Context(), filter, sortBy, topN)
		if err != nil {
			c.JSON(queryStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"groups": groups,
			"total":  len(groups),
		})
		return
	}

	recs, err := h.service.Recommend(c.Request.Context(), filter, sortBy, topN)
	if err != nil {
		c.JSON(queryStatus(err), gin.H{"error": err.Error()})
		return
	}

	if recs == nil {
		recs = make([]domain.Recommendation, 0)
	}
	c.JSON(http.StatusOK, gin.H{
		"recommendations": recs,
		"total":           len(recs),
	})
}
