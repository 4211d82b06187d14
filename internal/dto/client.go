package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
)

// CreateClientRequest defines the data needed to onboard a new client.
type CreateClientRequest struct {
	CompanyName string            `json:"companyName" binding:"required"`
	ContactName string            `json:"contactName"`
	Email       string            `json:"email" binding:"omitempty,email"`
	Phone       string            `json:"phone"`
	Industry    string            `json:"industry" binding:"required"`
	Plan        domain.ClientPlan `json:"plan" binding:"required"`
	MonthlyFee  decimal.Decimal   `json:"monthlyFee"`
	SeedChart   bool              `json:"seedChart"` // seed the industry's standard chart of accounts on creation
}

// UpdateClientRequest defines the data allowed for updating a client.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateClientRequest struct {
	CompanyName *string              `json:"companyName"`
	ContactName *string              `json:"contactName"`
	Email       *string              `json:"email" binding:"omitempty,email"`
	Phone       *string              `json:"phone"`
	Industry    *string              `json:"industry"`
	Plan        *domain.ClientPlan   `json:"plan"`
	Status      *domain.ClientStatus `json:"status" binding:"omitempty,oneof=active inactive"`
	MonthlyFee  *decimal.Decimal     `json:"monthlyFee"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID      string              `json:"clientID"`
	CompanyName   string              `json:"companyName"`
	ContactName   string              `json:"contactName"`
	Email         string              `json:"email"`
	Phone         string              `json:"phone"`
	Industry      string              `json:"industry"`
	Plan          domain.ClientPlan   `json:"plan"`
	Status        domain.ClientStatus `json:"status"`
	MonthlyFee    decimal.Decimal     `json:"monthlyFee"`
	CreatedAt     time.Time           `json:"createdAt"`
	CreatedBy     string              `json:"createdBy"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy string              `json:"lastUpdatedBy"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:      c.ClientID,
		CompanyName:   c.CompanyName,
		ContactName:   c.ContactName,
		Email:         c.Email,
		Phone:         c.Phone,
		Industry:      c.Industry,
		Plan:          c.Plan,
		Status:        c.Status,
		MonthlyFee:    c.MonthlyFee,
		CreatedAt:     c.CreatedAt,
		CreatedBy:     c.CreatedBy,
		LastUpdatedAt: c.LastUpdatedAt,
		LastUpdatedBy: c.LastUpdatedBy,
	}
}

// ToListClientResponse converts a slice of domain.Client to response DTOs.
func ToListClientResponse(clients []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i, c := range clients {
		res[i] = ToClientResponse(&c)
	}
	return res
}

// ListClientsParams defines query parameters for listing clients.
type ListClientsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
