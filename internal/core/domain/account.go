package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance is the sign convention in which an account's balance is
// reported as positive.
type NormalBalance string

const (
	Debit  NormalBalance = "DEBIT"
	Credit NormalBalance = "CREDIT"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// NormalBalance returns the sign convention derived from the account type.
// Asset and Expense accounts are debit-normal; Liability, Equity and
// Revenue accounts are credit-normal.
func (t AccountType) NormalBalance() NormalBalance {
	switch t {
	case Asset, Expense:
		return Debit
	default:
		return Credit
	}
}

// IsFlow reports whether balances of this type are period sums
// (Revenue/Expense) rather than cumulative point-in-time balances.
func (t AccountType) IsFlow() bool {
	return t == Revenue || t == Expense
}

// Account represents one node of a client's chart of accounts.
// Balance is the applied running balance in minor units, signed per
// NormalBalance, maintained by the posting engine under row locks.
type Account struct {
	AccountID       string        `json:"accountID"`
	ClientID        string        `json:"clientID"`
	AccountNumber   string        `json:"accountNumber"` // unique per client
	Name            string        `json:"name"`
	AccountType     AccountType   `json:"accountType"`
	AccountSubtype  string        `json:"accountSubtype"`
	ParentAccountID string        `json:"parentAccountID"` // empty for root accounts
	NormalBalance   NormalBalance `json:"normalBalance"`
	Description     string        `json:"description"`
	IsActive        bool          `json:"isActive"`
	IsSystemAccount bool          `json:"isSystemAccount"`
	Balance         int64         `json:"balance"`
	Version         int64         `json:"version"` // optimistic-lock counter
	AuditFields
}

// AccountNode is one node of the account tree returned by the registry.
type AccountNode struct {
	Account  Account        `json:"account"`
	Children []*AccountNode `json:"children"`
}
