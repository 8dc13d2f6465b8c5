package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "spendboard/internal/errors"
	"spendboard/internal/models"
	"spendboard/internal/pagination"
	"spendboard/internal/services"
)

// SpendingHandler serves the enriched spending views and the ledger
// mutations.
type SpendingHandler struct {
	reportService services.ReportServicer
	ledgerService services.LedgerServicer
}

// NewSpendingHandler creates a new SpendingHandler.
func NewSpendingHandler(reportService services.ReportServicer, ledgerService services.LedgerServicer) *SpendingHandler {
	return &SpendingHandler{reportService: reportService, ledgerService: ledgerService}
}

// SpendingRecordRequest is the payload for inserting or updating a
// spending record. Dates are ISO YYYY-MM-DD.
type SpendingRecordRequest struct {
	Item          string          `json:"item" binding:"required"`
	Cost          decimal.Decimal `json:"cost"`
	Quantity      decimal.Decimal `json:"quantity"`
	Measure       string          `json:"measure" binding:"omitempty,measure"`
	Location      string          `json:"location" binding:"required"`
	Shop          string          `json:"shop"`
	Details       string          `json:"details"`
	Tag           string          `json:"tag"`
	Date          string          `json:"date" binding:"required,datetime=2006-01-02"`
	ReceiptRef    string          `json:"receipt_ref"`
	Receipt       string          `json:"receipt"`
	TransactionID string          `json:"transaction_id"`
}

func (r *SpendingRecordRequest) toRecord() models.SpendingRecord {
	date, _ := time.Parse(dateOnly, r.Date)
	return models.SpendingRecord{
		Item:          r.Item,
		Cost:          r.Cost,
		Quantity:      r.Quantity,
		Measure:       r.Measure,
		Location:      r.Location,
		Shop:          r.Shop,
		Details:       r.Details,
		Tag:           r.Tag,
		Date:          date,
		ReceiptRef:    r.ReceiptRef,
		Receipt:       r.Receipt,
		TransactionID: r.TransactionID,
	}
}

// CategoriseRow is one row of a categorisation batch. Item and Location
// are optional here: rows the user has not filled in yet are filtered
// out by the ledger service rather than rejected.
type CategoriseRow struct {
	Item          string          `json:"item"`
	Cost          decimal.Decimal `json:"cost"`
	Quantity      decimal.Decimal `json:"quantity"`
	Measure       string          `json:"measure" binding:"omitempty,measure"`
	Location      string          `json:"location"`
	Shop          string          `json:"shop"`
	Details       string          `json:"details"`
	Tag           string          `json:"tag"`
	Date          string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	TransactionID string          `json:"transaction_id"`
}

// CategoriseRequest is the payload for accepting a batch of categorised
// transactions.
type CategoriseRequest struct {
	Transactions []CategoriseRow `json:"transactions" binding:"required"`
}

type listQuery struct {
	filterQuery
	pagination.PageRequest
}

// List returns a filtered, paginated page of enriched transactions.
func (h *SpendingHandler) List(c *gin.Context) {
	var query listQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transactions, err := h.reportService.Transactions(query.toFilter())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pagination.Paginate(transactions, query.PageRequest))
}

// Summary returns the headline metrics for a filtered view.
func (h *SpendingHandler) Summary(c *gin.Context) {
	var query filterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	summary, err := h.reportService.Summarise(query.toFilter())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

type breakdownQuery struct {
	filterQuery
	By    string `form:"by" binding:"required,breakdown_dim"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Breakdown returns the top groups by summed cost for a dimension.
func (h *SpendingHandler) Breakdown(c *gin.Context) {
	var query breakdownQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	dim, err := services.ParseBreakdownDimension(query.By)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows, err := h.reportService.Breakdown(query.toFilter(), dim, query.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"by": query.By, "breakdown": rows})
}

// Categories returns the category-chain rollup for a filtered view.
func (h *SpendingHandler) Categories(c *gin.Context) {
	var query filterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rows, err := h.reportService.CategoryTree(query.toFilter())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": rows})
}

// Create inserts a manually entered spending record.
func (h *SpendingHandler) Create(c *gin.Context) {
	var req SpendingRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	record, err := h.ledgerService.Insert(req.toRecord())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"record": record})
}

// Update replaces the record addressed by its transaction id.
func (h *SpendingHandler) Update(c *gin.Context) {
	var req SpendingRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	record, err := h.ledgerService.Update(c.Param("id"), req.toRecord())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"record": record})
}

// Delete removes the record addressed by its transaction id.
func (h *SpendingHandler) Delete(c *gin.Context) {
	if err := h.ledgerService.Delete(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Record deleted successfully"})
}

// Categorise accepts a batch of filled-in transactions.
func (h *SpendingHandler) Categorise(c *gin.Context) {
	var req CategoriseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	batch := make([]models.SpendingRecord, 0, len(req.Transactions))
	for _, row := range req.Transactions {
		var date time.Time
		if row.Date != "" {
			date, _ = time.Parse(dateOnly, row.Date)
		}
		batch = append(batch, models.SpendingRecord{
			Item:          row.Item,
			Cost:          row.Cost,
			Quantity:      row.Quantity,
			Measure:       row.Measure,
			Location:      row.Location,
			Shop:          row.Shop,
			Details:       row.Details,
			Tag:           row.Tag,
			Date:          date,
			TransactionID: row.TransactionID,
		})
	}

	accepted, skipped, err := h.ledgerService.Categorise(batch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accepted": accepted, "skipped": skipped})
}
