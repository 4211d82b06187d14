package dto

import (
	"time"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	AccountNumber   string             `json:"accountNumber" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,accounttype"`
	AccountSubtype  string             `json:"accountSubtype"`
	ParentAccountID *string            `json:"parentAccountID"` // Optional, use pointer for nullability
	NormalBalance   *string            `json:"normalBalance" binding:"omitempty,oneof=DEBIT CREDIT"` // Optional; derived from type when absent, must match it when present
	Description     string             `json:"description"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// Type and normal balance are fixed at creation and cannot be changed here.
type UpdateAccountRequest struct {
	Name           *string `json:"name"`
	AccountSubtype *string `json:"accountSubtype"`
	Description    *string `json:"description"`
	Version        int64   `json:"version" binding:"required"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account; Balance is in minor units (cents).
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	ClientID        string             `json:"clientID"`
	AccountNumber   string             `json:"accountNumber"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	AccountSubtype  string             `json:"accountSubtype"`
	ParentAccountID string             `json:"parentAccountID"` // Empty string if null in DB
	NormalBalance   string             `json:"normalBalance"`
	Description     string             `json:"description"`
	IsActive        bool               `json:"isActive"`
	IsSystemAccount bool               `json:"isSystemAccount"`
	Balance         int64              `json:"balance"`
	Version         int64              `json:"version"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy   string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		ClientID:        acc.ClientID,
		AccountNumber:   acc.AccountNumber,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		AccountSubtype:  acc.AccountSubtype,
		ParentAccountID: acc.ParentAccountID,
		NormalBalance:   string(acc.NormalBalance),
		Description:     acc.Description,
		IsActive:        acc.IsActive,
		IsSystemAccount: acc.IsSystemAccount,
		Balance:         acc.Balance,
		Version:         acc.Version,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// AccountNodeResponse is one node of the account hierarchy.
type AccountNodeResponse struct {
	AccountResponse
	Children []AccountNodeResponse `json:"children,omitempty"`
}

// ToAccountTreeResponse converts account tree nodes to their response shape.
func ToAccountTreeResponse(nodes []*domain.AccountNode) []AccountNodeResponse {
	res := make([]AccountNodeResponse, len(nodes))
	for i, n := range nodes {
		res[i] = AccountNodeResponse{
			AccountResponse: ToAccountResponse(&n.Account),
			Children:        ToAccountTreeResponse(n.Children),
		}
	}
	return res
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	AccountID string    `json:"accountID"`
	AsOf      time.Time `json:"asOf"`
	Balance   int64     `json:"balance"` // signed per the account's normal balance, in minor units
}
