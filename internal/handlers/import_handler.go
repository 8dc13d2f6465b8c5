package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendboard/internal/errors"
	"spendboard/internal/logger"
	"spendboard/internal/models"
	"spendboard/internal/services"
)

// ImportHandler serves the uncategorised-transactions queue.
type ImportHandler struct {
	importService services.ImportServicer
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService services.ImportServicer) *ImportHandler {
	return &ImportHandler{importService: importService}
}

type uncategorisedQuery struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// Uncategorised returns the fetched transactions not yet in the ledger.
// The window defaults to the last month. When the transaction service is
// unreachable the response is still 200 with an empty list and a warning,
// so the rest of the dashboard stays usable.
func (h *ImportHandler) Uncategorised(c *gin.Context) {
	var query uncategorisedQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	end := time.Now().UTC()
	start := end.AddDate(0, -1, 0)
	if query.StartDate != "" {
		start, _ = time.Parse(dateOnly, query.StartDate)
	}
	if query.EndDate != "" {
		end, _ = time.Parse(dateOnly, query.EndDate)
	}

	transactions, err := h.importService.Uncategorised(c.Request.Context(), start, end)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrExternalService.Code {
			logger.Get().Warnw("transaction service unavailable",
				"error", err.Error(),
			)
			c.JSON(http.StatusOK, gin.H{
				"transactions": []models.ImportedTransaction{},
				"warning":      appErr.Message,
			})
			return
		}
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}
