package domain

import "github.com/shopspring/decimal"

// ClientStatus indicates whether a client engagement is active.
type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
)

// ClientPlan is the service plan the client is billed under.
type ClientPlan string

const (
	PlanBasic       ClientPlan = "BASIC"
	PlanFullService ClientPlan = "FULL SERVICE"
	PlanPremium     ClientPlan = "PREMIUM"
)

// IsValid checks if the plan is one of the billable plans.
func (p ClientPlan) IsValid() bool {
	switch p {
	case PlanBasic, PlanFullService, PlanPremium:
		return true
	}
	return false
}

// Client is the tenant boundary: every account, journal entry and report is
// scoped to exactly one client. LastEntryNumber backs the per-client
// monotonic entry counter; it is only ever advanced atomically in SQL.
type Client struct {
	ClientID        string          `json:"clientID"`
	CompanyName     string          `json:"companyName"`
	ContactName     string          `json:"contactName"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	Industry        string          `json:"industry"`
	Plan            ClientPlan      `json:"plan"`
	MonthlyFee      decimal.Decimal `json:"monthlyFee"`
	Status          ClientStatus    `json:"status"`
	LastEntryNumber int64           `json:"lastEntryNumber"`
	AuditFields
}
