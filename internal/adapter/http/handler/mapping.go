package handler

import (
	"time"

	"shared-wallet-service/internal/adapter/http/dto"
	"shared-wallet-service/internal/core/domain"
)

func toUserSummary(s domain.UserSummary) dto.UserSummaryResponse {
	return dto.UserSummaryResponse{ID: s.ID, Name: s.Name}
}

func toUserSummaries(in []domain.UserSummary) []dto.UserSummaryResponse {
	out := make([]dto.UserSummaryResponse, 0, len(in))
	for _, s := range in {
		out = append(out, toUserSummary(s))
	}
	return out
}

func toWalletSummaries(in []domain.WalletSummary) []dto.WalletSummaryResponse {
	out := make([]dto.WalletSummaryResponse, 0, len(in))
	for _, s := range in {
		out = append(out, dto.WalletSummaryResponse{ID: s.ID, Name: s.Name})
	}
	return out
}

func toUserResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:      u.ID,
		Name:    u.Name,
		Wallets: toWalletSummaries(u.Wallets),
	}
}

func toWalletResponse(w *domain.Wallet) dto.WalletResponse {
	return dto.WalletResponse{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Access:      toUserSummaries(w.Access),
		Balance:     w.Balance,
		Extra:       w.Extra,
		CreatedBy:   toUserSummary(w.CreatedBy),
		CreatedAt:   w.CreatedAt.UTC().Format(time.RFC3339),
		Locked:      w.Locked,
	}
}

func toTransactionResponse(tx *domain.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:        tx.ID,
		WalletID:  tx.WalletID,
		Name:      tx.Name,
		Amount:    tx.Amount,
		Extra:     tx.Extra,
		CreatedBy: toUserSummary(tx.CreatedBy),
		CreatedAt: tx.CreatedAt.UTC().Format(time.RFC3339),
	}
}
