package accounting

import (
	"fmt"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
)

// SignedAmount expresses a posting's effect on an account in the account's
// normal-balance convention: debit-normal accounts grow with debits,
// credit-normal accounts grow with credits.
func SignedAmount(p domain.Posting, nb domain.NormalBalance) int64 {
	if nb == domain.Debit {
		return p.DebitAmount - p.CreditAmount
	}
	return p.CreditAmount - p.DebitAmount
}

// EntryTotals sums the debit and credit sides of a set of postings.
func EntryTotals(postings []domain.Posting) (debits int64, credits int64) {
	for _, p := range postings {
		debits += p.DebitAmount
		credits += p.CreditAmount
	}
	return debits, credits
}

// ValidatePostingAmounts checks the single-sided-amount invariant: each
// posting carries exactly one nonzero, non-negative side.
func ValidatePostingAmounts(postings []domain.Posting) error {
	for i, p := range postings {
		if p.DebitAmount < 0 || p.CreditAmount < 0 {
			return fmt.Errorf("posting %d: amounts must be non-negative", i)
		}
		if (p.DebitAmount == 0) == (p.CreditAmount == 0) {
			return fmt.Errorf("posting %d: exactly one of debit or credit must be nonzero", i)
		}
	}
	return nil
}

// MirrorPostings builds the compensating lines for a void: debit and credit
// amounts swapped per line, identifiers cleared for reassignment.
func MirrorPostings(postings []domain.Posting) []domain.Posting {
	mirrored := make([]domain.Posting, len(postings))
	for i, p := range postings {
		mirrored[i] = domain.Posting{
			AccountID:    p.AccountID,
			DebitAmount:  p.CreditAmount,
			CreditAmount: p.DebitAmount,
			Memo:         p.Memo,
		}
	}
	return mirrored
}

// subtypeActivity maps account subtypes to cash flow statement activities.
// Cash subtypes are intentionally absent: the cash accounts themselves are
// the statement's bottom line, not an adjustment.
var subtypeActivity = map[string]domain.CashFlowActivity{
	"Accounts Receivable":      domain.Operating,
	"Inventory":                domain.Operating,
	"Prepaid Expenses":         domain.Operating,
	"Other Current Asset":      domain.Operating,
	"Accounts Payable":         domain.Operating,
	"Credit Card":              domain.Operating,
	"Accrued Liabilities":      domain.Operating,
	"Payroll Liabilities":      domain.Operating,
	"Sales Tax Payable":        domain.Operating,
	"Other Current Liability":  domain.Operating,
	"Fixed Asset":              domain.Investing,
	"Accumulated Depreciation": domain.Investing,
	"Intangible Asset":         domain.Investing,
	"Long-term Investment":     domain.Investing,
	"Long-term Liability":      domain.Financing,
	"Notes Payable":            domain.Financing,
	"Owner's Equity":           domain.Financing,
	"Owner's Draw":             domain.Financing,
	"Retained Earnings":        domain.Financing,
	"Common Stock":             domain.Financing,
}

// cashSubtypes identifies accounts whose period delta is the net change in
// cash rather than an adjustment to it.
var cashSubtypes = map[string]bool{
	"Cash":             true,
	"Bank":             true,
	"Cash Equivalents": true,
}

// IsCashSubtype reports whether the subtype represents cash or equivalents.
func IsCashSubtype(subtype string) bool {
	return cashSubtypes[subtype]
}

// ActivityForSubtype resolves the cash flow activity for an account subtype.
// The second return is false for unmapped subtypes; the report generator
// treats that as a validation failure rather than dropping the account.
func ActivityForSubtype(subtype string) (domain.CashFlowActivity, bool) {
	activity, ok := subtypeActivity[subtype]
	return activity, ok
}
