package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendboard/internal/errors"
	"spendboard/internal/logger"
	"spendboard/internal/services"
)

// dateOnly is the wire format for dates in requests and query strings.
const dateOnly = "2006-01-02"

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// filterQuery holds the shared spending-view filter parameters.
type filterQuery struct {
	StartDate     string   `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate       string   `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Tags          []string `form:"tag"`
	Shops         []string `form:"shop"`
	SubCategories []string `form:"sub_category"`
	Categories    []string `form:"category"`
}

// toFilter converts bound query parameters into a report filter.
func (q *filterQuery) toFilter() services.Filter {
	filter := services.Filter{
		Tags:          q.Tags,
		Shops:         q.Shops,
		SubCategories: q.SubCategories,
		Categories:    q.Categories,
	}
	if q.StartDate != "" {
		filter.Start, _ = time.Parse(dateOnly, q.StartDate)
	}
	if q.EndDate != "" {
		filter.End, _ = time.Parse(dateOnly, q.EndDate)
	}
	return filter
}
