package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	loandomain "github.com/mikopa/backend/internal/domain/loan"
	"github.com/mikopa/backend/internal/http/validate"
)

type LoanService interface {
	Issue(ctx context.Context, clientUID uuid.UUID, amount int64) (*loandomain.Issued, error)
	ListActive(ctx context.Context) ([]loandomain.Entity, error)
	SumOutstanding(ctx context.Context) (int64, error)
}

type LoanHandler struct {
	loans  LoanService
	logger *slog.Logger
}

func NewLoanHandler(loans LoanService, logger *slog.Logger) *LoanHandler {
	return &LoanHandler{loans: loans, logger: logger}
}

var issueLoanSchema = validate.Schema{
	{Name: "client_id", Source: validate.Body, Required: true, Rules: []validate.Rule{validate.UUID()}},
	{Name: "amount", Source: validate.Body, Required: true, Rules: []validate.Rule{
		validate.Integer(), validate.Min(1), validate.Max(loandomain.MaxAmount),
	}},
}

func (h *LoanHandler) Issue(c *gin.Context) {
	body, ok := decodeJSONBody(c)
	if !ok {
		return
	}
	values, verrs := issueLoanSchema.Apply(body, c.Request.URL.Query())
	if len(verrs) > 0 {
		respondValidationErrors(c, verrs)
		return
	}

	clientUID := uuid.MustParse(validate.String(values, "client_id"))
	issued, err := h.loans.Issue(c.Request.Context(), clientUID, validate.Int64(values, "amount"))
	switch {
	case errors.Is(err, loandomain.ErrClientNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Valid user not found"})
		return
	case errors.Is(err, loandomain.ErrInvalidAmount):
		respondValidationErrors(c, []string{"amount(body): must be between 1 and 1000000"})
		return
	case err != nil:
		h.logger.Error("issue loan failed", "err", err)
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"uid":      issued.UID,
			"amount":   issued.Amount,
			"approved": issued.Approved,
			"active":   issued.Active,
			"user": gin.H{
				"full_name":    issued.ClientName,
				"phone_number": issued.ClientPhone,
			},
		},
	})
}

func (h *LoanHandler) ListActive(c *gin.Context) {
	items, err := h.loans.ListActive(c.Request.Context())
	if err != nil {
		h.logger.Error("list loans failed", "err", err)
		respondInternalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items, "count": len(items)})
}

func (h *LoanHandler) SumOutstanding(c *gin.Context) {
	total, err := h.loans.SumOutstanding(c.Request.Context())
	if err != nil {
		h.logger.Error("sum loan amounts failed", "err", err)
		respondInternalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"total": total}})
}
