package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "spendboard/internal/errors"
	"spendboard/internal/models"
	"spendboard/internal/services"
)

// IncomeHandler serves the income and deductions views.
type IncomeHandler struct {
	incomeService services.IncomeServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// IncomeRecordRequest is the payload for inserting or updating an income
// record. Dates are ISO YYYY-MM-DD; Taxable must be one of the sheet's
// classifications.
type IncomeRecordRequest struct {
	GrossIncome     decimal.Decimal `json:"gross_income"`
	SalarySacrifice decimal.Decimal `json:"salary_sacrifice"`
	Tax             decimal.Decimal `json:"tax"`
	Income          decimal.Decimal `json:"income"`
	Date            string          `json:"date" binding:"required,datetime=2006-01-02"`
	Employer        string          `json:"employer"`
	Description     string          `json:"description"`
	Taxable         string          `json:"taxable" binding:"required,taxable"`
	ReceivedInBank  bool            `json:"received_in_bank"`
	Comment         string          `json:"comment"`
}

func (r *IncomeRecordRequest) toRecord() models.IncomeRecord {
	date, _ := time.Parse(dateOnly, r.Date)
	return models.IncomeRecord{
		GrossIncome:     r.GrossIncome,
		SalarySacrifice: r.SalarySacrifice,
		Tax:             r.Tax,
		Income:          r.Income,
		Date:            date,
		Employer:        r.Employer,
		Description:     r.Description,
		Taxable:         r.Taxable,
		ReceivedInBank:  r.ReceivedInBank,
		Comment:         r.Comment,
	}
}

// List returns income records, optionally narrowed to one financial year
// (e.g. financial_year=FY 2024/2025).
func (h *IncomeHandler) List(c *gin.Context) {
	records, err := h.incomeService.IncomeRecords()
	if err != nil {
		respondWithError(c, err)
		return
	}

	if year := c.Query("financial_year"); year != "" {
		filtered := make([]models.IncomeRecord, 0, len(records))
		for _, r := range records {
			if r.FinancialYear == year {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	c.JSON(http.StatusOK, gin.H{"income": records})
}

// Summary returns per-financial-year income totals.
func (h *IncomeHandler) Summary(c *gin.Context) {
	summaries, err := h.incomeService.IncomeSummary()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summaries})
}

// Create inserts a manually entered income record.
func (h *IncomeHandler) Create(c *gin.Context) {
	var req IncomeRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	record, err := h.incomeService.Insert(req.toRecord())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"record": record})
}

// Update replaces the income record addressed by its id.
func (h *IncomeHandler) Update(c *gin.Context) {
	var req IncomeRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	record, err := h.incomeService.Update(c.Param("id"), req.toRecord())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"record": record})
}

// Delete removes the income record addressed by its id.
func (h *IncomeHandler) Delete(c *gin.Context) {
	if err := h.incomeService.Delete(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Record deleted successfully"})
}

// Deductions returns the deductions ledger.
func (h *IncomeHandler) Deductions(c *gin.Context) {
	records, err := h.incomeService.Deductions()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deductions": records})
}
