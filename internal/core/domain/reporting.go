package domain

import "time"

// BalanceRow is the raw per-account aggregate the reporting repository
// returns: total debits and credits over the queried window, together with
// the account metadata reports group by. Signing happens in one place, in
// the service layer, not in SQL.
type BalanceRow struct {
	AccountID       string        `json:"accountID"`
	AccountNumber   string        `json:"accountNumber"`
	Name            string        `json:"name"`
	AccountType     AccountType   `json:"accountType"`
	AccountSubtype  string        `json:"accountSubtype"`
	ParentAccountID string        `json:"parentAccountID"`
	NormalBalance   NormalBalance `json:"normalBalance"`
	Debits          int64         `json:"debits"`
	Credits         int64         `json:"credits"`
}

// Signed returns the row's balance in the account's normal-balance
// convention.
func (r BalanceRow) Signed() int64 {
	if r.NormalBalance == Debit {
		return r.Debits - r.Credits
	}
	return r.Credits - r.Debits
}

// TrialBalanceRow is one account's balance as of a date. Balance is
// debit-positive (debits minus credits) for every account regardless of its
// normal balance, so the sum over all rows of a well-formed ledger is
// exactly zero. NormalBalance lets consumers flip the sign for display.
type TrialBalanceRow struct {
	AccountID     string        `json:"accountID"`
	AccountNumber string        `json:"accountNumber"`
	AccountName   string        `json:"accountName"`
	AccountType   AccountType   `json:"accountType"`
	NormalBalance NormalBalance `json:"normalBalance"`
	Balance       int64         `json:"balance"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID     string `json:"accountID"`
	AccountNumber string `json:"accountNumber"`
	Name          string `json:"name"`
	Amount        int64  `json:"amount"`
}

// IntegrityWarning flags a report-level consistency violation. It is
// attached to the report, never returned as an error: a report with a
// warning is still delivered.
type IntegrityWarning struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// BalanceSheetLine is one account's position, nested per the account tree.
type BalanceSheetLine struct {
	AccountID     string             `json:"accountID"`
	AccountNumber string             `json:"accountNumber"`
	Name          string             `json:"name"`
	Amount        int64              `json:"amount"` // includes descendants' amounts
	Children      []BalanceSheetLine `json:"children,omitempty"`
}

// BalanceSheetData is the payload of a Balance Sheet report.
type BalanceSheetData struct {
	AsOf             time.Time          `json:"asOf"`
	Assets           []BalanceSheetLine `json:"assets"`
	Liabilities      []BalanceSheetLine `json:"liabilities"`
	Equity           []BalanceSheetLine `json:"equity"`
	TotalAssets      int64              `json:"totalAssets"`
	TotalLiabilities int64              `json:"totalLiabilities"`
	TotalEquity      int64              `json:"totalEquity"`
	Warnings         []IntegrityWarning `json:"warnings,omitempty"`
}

// ProfitAndLossData is the payload of a Profit & Loss report.
type ProfitAndLossData struct {
	PeriodStart   time.Time       `json:"periodStart"`
	PeriodEnd     time.Time       `json:"periodEnd"`
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  int64           `json:"totalRevenue"`
	TotalExpenses int64           `json:"totalExpenses"`
	NetIncome     int64           `json:"netIncome"`
}

// CashFlowActivity classifies a balance-sheet account's contribution to the
// cash flow statement.
type CashFlowActivity string

const (
	Operating CashFlowActivity = "OPERATING"
	Investing CashFlowActivity = "INVESTING"
	Financing CashFlowActivity = "FINANCING"
)

// CashFlowAdjustment is one account's period delta expressed as a cash
// effect (positive = cash provided, negative = cash used).
type CashFlowAdjustment struct {
	AccountID     string           `json:"accountID"`
	AccountNumber string           `json:"accountNumber"`
	Name          string           `json:"name"`
	Activity      CashFlowActivity `json:"activity"`
	Amount        int64            `json:"amount"`
}

// CashFlowData is the payload of a Cash Flow report (indirect method).
type CashFlowData struct {
	PeriodStart     time.Time            `json:"periodStart"`
	PeriodEnd       time.Time            `json:"periodEnd"`
	NetIncome       int64                `json:"netIncome"`
	Operating       []CashFlowAdjustment `json:"operating"`
	Investing       []CashFlowAdjustment `json:"investing"`
	Financing       []CashFlowAdjustment `json:"financing"`
	NetOperating    int64                `json:"netOperating"` // includes net income
	NetInvesting    int64                `json:"netInvesting"`
	NetFinancing    int64                `json:"netFinancing"`
	NetChangeInCash int64                `json:"netChangeInCash"`
}

// ReportType selects which payload shape a stored report carries.
type ReportType string

const (
	ReportBalanceSheet  ReportType = "BALANCE_SHEET"
	ReportProfitAndLoss ReportType = "PROFIT_AND_LOSS"
	ReportCashFlow      ReportType = "CASH_FLOW"
)

// Report is a persisted report. Exactly one payload pointer is non-nil and
// it must match ReportType; any other stored shape is rejected on read.
type Report struct {
	ReportID      string             `json:"reportID"`
	ClientID      string             `json:"clientID"`
	ReportType    ReportType         `json:"reportType"`
	PeriodStart   time.Time          `json:"periodStart"`
	PeriodEnd     time.Time          `json:"periodEnd"`
	BalanceSheet  *BalanceSheetData  `json:"balanceSheet,omitempty"`
	ProfitAndLoss *ProfitAndLossData `json:"profitAndLoss,omitempty"`
	CashFlow      *CashFlowData      `json:"cashFlow,omitempty"`
	AuditFields
}
