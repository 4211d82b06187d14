package domain

// Posting is one debit-or-credit line item belonging to exactly one journal
// entry and affecting exactly one account. Amounts are integral minor units
// (cents); exactly one of DebitAmount/CreditAmount is nonzero.
type Posting struct {
	PostingID    string `json:"postingID"`
	EntryID      string `json:"entryID"`
	AccountID    string `json:"accountID"`
	DebitAmount  int64  `json:"debitAmount"`
	CreditAmount int64  `json:"creditAmount"`
	Memo         string `json:"memo"`
	AuditFields
}

// IsDebit reports whether the posting is a debit line.
func (p Posting) IsDebit() bool {
	return p.DebitAmount != 0
}

// Amount returns the magnitude of the nonzero side.
func (p Posting) Amount() int64 {
	if p.DebitAmount != 0 {
		return p.DebitAmount
	}
	return p.CreditAmount
}
