package handler

import (
	"net/http"

	"demo-bank/internal/adapter/http/dto"
	"demo-bank/internal/adapter/http/middleware"
	"demo-bank/internal/adapter/http/web"
	"demo-bank/internal/core/ports"
	"demo-bank/pkg/apperror"
	"demo-bank/pkg/response"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves the dashboard and read-only account endpoints.
type AccountHandler struct {
	accountSvc ports.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountSvc ports.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

// Dashboard handles GET /dashboard.
func (h *AccountHandler) Dashboard(c *gin.Context) {
	c.HTML(http.StatusOK, web.DashboardPage, gin.H{"Username": c.GetString(middleware.CtxUsername)})
}

// UserInfo handles GET /api/user-info.
func (h *AccountHandler) UserInfo(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrNotAuthenticated())
		return
	}

	user, err := h.accountSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewUserInfoResponse(user))
}

// Transactions handles GET /api/transactions.
func (h *AccountHandler) Transactions(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrNotAuthenticated())
		return
	}

	txns, err := h.accountSvc.GetHistory(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewTransactionList(txns))
}
