package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	clientdomain "github.com/mikopa/backend/internal/domain/client"
	"github.com/mikopa/backend/internal/http/validate"
)

type ClientService interface {
	Create(ctx context.Context, phoneNumber, fullName string) (*clientdomain.Entity, error)
	Deactivate(ctx context.Context, uid uuid.UUID) error
}

type ClientHandler struct {
	clients ClientService
	logger  *slog.Logger
}

func NewClientHandler(clients ClientService, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{clients: clients, logger: logger}
}

var createClientSchema = validate.Schema{
	{Name: "phone_number", Source: validate.Body, Required: true, Rules: []validate.Rule{validate.MobilePhone()}},
	{Name: "full_name", Source: validate.Body, Required: true, Rules: []validate.Rule{validate.NonEmptyString()}},
}

var deactivateClientSchema = validate.Schema{
	{Name: "uid", Source: validate.Query, Required: true, Rules: []validate.Rule{validate.UUID()}},
}

func (h *ClientHandler) Create(c *gin.Context) {
	body, ok := decodeJSONBody(c)
	if !ok {
		return
	}
	values, verrs := createClientSchema.Apply(body, c.Request.URL.Query())
	if len(verrs) > 0 {
		respondValidationErrors(c, verrs)
		return
	}

	created, err := h.clients.Create(c.Request.Context(),
		validate.String(values, "phone_number"),
		validate.String(values, "full_name"),
	)
	switch {
	case errors.Is(err, clientdomain.ErrActiveExists):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Active client already exists"})
		return
	case errors.Is(err, clientdomain.ErrDeactivatedExists):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Account already exists but deactivated"})
		return
	case err != nil:
		h.logger.Error("create client failed", "err", err)
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"uid":          created.UID,
			"phone_number": created.PhoneNumber,
			"full_name":    created.FullName,
		},
	})
}

func (h *ClientHandler) Deactivate(c *gin.Context) {
	values, verrs := deactivateClientSchema.Apply(nil, c.Request.URL.Query())
	if len(verrs) > 0 {
		respondValidationErrors(c, verrs)
		return
	}
	uid := uuid.MustParse(validate.String(values, "uid"))

	err := h.clients.Deactivate(c.Request.Context(), uid)
	switch {
	case errors.Is(err, clientdomain.ErrNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Client not found"})
		return
	case errors.Is(err, clientdomain.ErrHasActiveLoans):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Client has existing active loans"})
		return
	case err != nil:
		h.logger.Error("deactivate client failed", "err", err)
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Client deactivated successfully"})
}
