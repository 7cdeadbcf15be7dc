package handler

import (
	"errors"
	"net/http"

	"demo-bank/internal/adapter/http/dto"
	"demo-bank/internal/adapter/http/middleware"
	"demo-bank/internal/core/ports"
	"demo-bank/pkg/apperror"
	"demo-bank/pkg/response"

	"github.com/gin-gonic/gin"
)

// TransferHandler handles money transfers.
type TransferHandler struct {
	transferSvc ports.TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferSvc ports.TransferService) *TransferHandler {
	return &TransferHandler{transferSvc: transferSvc}
}

// Transfer handles POST /api/transfer.
func (h *TransferHandler) Transfer(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrNotAuthenticated())
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBind(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, apperror.ErrBodyTooLarge())
			return
		}
		response.Error(c, apperror.Validation(dto.ValidationMessage(err)))
		return
	}
	dto.SanitizeStruct(&req)

	err := h.transferSvc.Transfer(c.Request.Context(), ports.TransferRequest{
		UserID:    userID,
		Recipient: req.Recipient,
		Amount:    string(req.Amount),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Ack(c)
}
