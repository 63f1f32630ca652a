package handler

import (
	"shared-wallet-service/internal/adapter/http/dto"
	"shared-wallet-service/internal/adapter/http/middleware"
	"shared-wallet-service/internal/core/ports"
	"shared-wallet-service/pkg/apperror"
	"shared-wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// TransactionHandler handles ledger endpoints.
type TransactionHandler struct {
	txSvc ports.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(txSvc ports.TransactionService) *TransactionHandler {
	return &TransactionHandler{txSvc: txSvc}
}

// Create handles POST /api/v1/wallets/:id/transactions.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	tx, err := h.txSvc.Create(c.Request.Context(), c.Param("id"), ports.CreateTransactionRequest{
		Name:   req.Name,
		Amount: req.Amount,
		Extra:  req.Extra,
	}, middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toTransactionResponse(tx))
}

// ListByWallet handles GET /api/v1/wallets/:id/transactions?limit=&cursor=.
func (h *TransactionHandler) ListByWallet(c *gin.Context) {
	limit, err := parseLimit(c.Query("limit"))
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.txSvc.List(c.Request.Context(), c.Param("id"), c.Query("cursor"), limit, middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	out := dto.TransactionListResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(page.Transactions)),
		HasMore:      page.HasMore,
	}
	if page.HasMore {
		out.Cursor = page.Cursor
	}
	for i := range page.Transactions {
		out.Transactions = append(out.Transactions, toTransactionResponse(&page.Transactions[i]))
	}
	response.OK(c, out)
}

// Get handles GET /api/v1/transactions/:id.
func (h *TransactionHandler) Get(c *gin.Context) {
	tx, err := h.txSvc.Get(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toTransactionResponse(tx))
}

// Update handles PATCH /api/v1/transactions/:id.
func (h *TransactionHandler) Update(c *gin.Context) {
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	tx, err := h.txSvc.Update(c.Request.Context(), c.Param("id"), ports.TransactionPatch{
		Name:   req.Name,
		Amount: req.Amount,
		Extra:  req.Extra,
	}, middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toTransactionResponse(tx))
}

// Delete handles DELETE /api/v1/transactions/:id.
func (h *TransactionHandler) Delete(c *gin.Context) {
	tx, err := h.txSvc.Delete(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toTransactionResponse(tx))
}

// ListMine handles GET /api/v1/transactions?createdBy=me. Only the
// caller's own transactions are exposed; any other createdBy value is
// rejected.
func (h *TransactionHandler) ListMine(c *gin.Context) {
	if c.Query("createdBy") != "me" {
		response.Error(c, apperror.Validation("createdBy=me is the only supported filter"))
		return
	}

	txs, err := h.txSvc.ListByCreator(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.TransactionResponse, 0, len(txs))
	for i := range txs {
		out = append(out, toTransactionResponse(&txs[i]))
	}
	response.OK(c, out)
}
