package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spendboard/internal/cache"
)

// RefreshHandler drops every memoized pipeline result, forcing the next
// read of each view to reload its workbook or refetch its window. This
// backs the dashboard's "Refresh Data" action.
type RefreshHandler struct {
	cache *cache.Cache
}

// NewRefreshHandler creates a new RefreshHandler.
func NewRefreshHandler(c *cache.Cache) *RefreshHandler {
	return &RefreshHandler{cache: c}
}

// Refresh invalidates all cached pipeline results.
func (h *RefreshHandler) Refresh(c *gin.Context) {
	h.cache.InvalidateAll()
	c.JSON(http.StatusOK, gin.H{"message": "Caches invalidated"})
}
