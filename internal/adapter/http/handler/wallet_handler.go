package handler

import (
	"shared-wallet-service/internal/adapter/http/dto"
	"shared-wallet-service/internal/adapter/http/middleware"
	"shared-wallet-service/internal/core/ports"
	"shared-wallet-service/pkg/apperror"
	"shared-wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet lifecycle and access endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
	accessSvc ports.AccessService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService, accessSvc ports.AccessService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc, accessSvc: accessSvc}
}

// Create handles POST /api/v1/wallets.
func (h *WalletHandler) Create(c *gin.Context) {
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	wallet, err := h.walletSvc.Create(c.Request.Context(), middleware.CurrentUser(c), ports.CreateWalletRequest{
		Name:        req.Name,
		Description: req.Description,
		Extra:       req.Extra,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toWalletResponse(wallet))
}

// Get handles GET /api/v1/wallets/:id. An anonymous request reads the
// wallet without a membership check; an authenticated one is held to
// membership. Inherited behavior, kept for client compatibility.
func (h *WalletHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if user == nil {
		wallet, err := h.walletSvc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, toWalletResponse(wallet))
		return
	}

	wallet, err := h.walletSvc.GetForUser(c.Request.Context(), c.Param("id"), user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toWalletResponse(wallet))
}

// ListMine handles GET /api/v1/wallets.
func (h *WalletHandler) ListMine(c *gin.Context) {
	summaries, err := h.walletSvc.ListMine(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toWalletSummaries(summaries))
}

// ListAll handles GET /api/v1/wallets/all?limit=&cursor=.
func (h *WalletHandler) ListAll(c *gin.Context) {
	limit, err := parseLimit(c.Query("limit"))
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.walletSvc.ListAll(c.Request.Context(), middleware.CurrentUser(c), c.Query("cursor"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := dto.WalletListResponse{
		Wallets: make([]dto.WalletResponse, 0, len(page.Wallets)),
		HasMore: page.HasMore,
	}
	if page.HasMore {
		out.Cursor = page.Cursor
	}
	for i := range page.Wallets {
		out.Wallets = append(out.Wallets, toWalletResponse(&page.Wallets[i]))
	}
	response.OK(c, out)
}

// Close handles POST /api/v1/wallets/:id/close.
func (h *WalletHandler) Close(c *gin.Context) {
	wallet, err := h.walletSvc.Close(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toWalletResponse(wallet))
}

// Delete handles DELETE /api/v1/wallets/:id.
func (h *WalletHandler) Delete(c *gin.Context) {
	wallet, err := h.walletSvc.Delete(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toWalletResponse(wallet))
}

// GrantAccess handles POST /api/v1/wallets/:id/access.
func (h *WalletHandler) GrantAccess(c *gin.Context) {
	var req dto.GrantAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	wallet, err := h.accessSvc.Grant(c.Request.Context(), c.Param("id"), req.UserID, middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toWalletResponse(wallet))
}

// RevokeAccess handles DELETE /api/v1/wallets/:id/access/:userId.
func (h *WalletHandler) RevokeAccess(c *gin.Context) {
	wallet, err := h.accessSvc.Revoke(c.Request.Context(), c.Param("id"), c.Param("userId"), middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toWalletResponse(wallet))
}
