package accounting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	"github.com/brightbooks/bright_books_app/internal/utils/accounting"
)

func TestSignedAmount(t *testing.T) {
	debit := domain.Posting{DebitAmount: 500}
	credit := domain.Posting{CreditAmount: 500}

	assert.Equal(t, int64(500), accounting.SignedAmount(debit, domain.Debit))
	assert.Equal(t, int64(-500), accounting.SignedAmount(debit, domain.Credit))
	assert.Equal(t, int64(-500), accounting.SignedAmount(credit, domain.Debit))
	assert.Equal(t, int64(500), accounting.SignedAmount(credit, domain.Credit))
}

func TestEntryTotals(t *testing.T) {
	postings := []domain.Posting{
		{DebitAmount: 30000},
		{DebitAmount: 20000},
		{CreditAmount: 50000},
	}

	debits, credits := accounting.EntryTotals(postings)
	assert.Equal(t, int64(50000), debits)
	assert.Equal(t, int64(50000), credits)
}

func TestValidatePostingAmounts(t *testing.T) {
	valid := []domain.Posting{
		{DebitAmount: 100},
		{CreditAmount: 100},
	}
	assert.NoError(t, accounting.ValidatePostingAmounts(valid))

	bothSides := []domain.Posting{{DebitAmount: 100, CreditAmount: 100}}
	assert.Error(t, accounting.ValidatePostingAmounts(bothSides))

	neitherSide := []domain.Posting{{}}
	assert.Error(t, accounting.ValidatePostingAmounts(neitherSide))

	negative := []domain.Posting{{DebitAmount: -100}}
	assert.Error(t, accounting.ValidatePostingAmounts(negative))
}

func TestMirrorPostings(t *testing.T) {
	original := []domain.Posting{
		{PostingID: "p1", EntryID: "e1", AccountID: "a1", DebitAmount: 700, Memo: "sale"},
		{PostingID: "p2", EntryID: "e1", AccountID: "a2", CreditAmount: 700},
	}

	mirrored := accounting.MirrorPostings(original)
	require.Len(t, mirrored, 2)

	assert.Equal(t, "a1", mirrored[0].AccountID)
	assert.Equal(t, int64(700), mirrored[0].CreditAmount)
	assert.Zero(t, mirrored[0].DebitAmount)
	assert.Equal(t, "sale", mirrored[0].Memo)
	assert.Empty(t, mirrored[0].PostingID) // reassigned by the caller
	assert.Empty(t, mirrored[0].EntryID)

	assert.Equal(t, "a2", mirrored[1].AccountID)
	assert.Equal(t, int64(700), mirrored[1].DebitAmount)

	// A mirror of a balanced entry is itself balanced.
	debits, credits := accounting.EntryTotals(mirrored)
	assert.Equal(t, debits, credits)
}

func TestActivityForSubtype(t *testing.T) {
	activity, ok := accounting.ActivityForSubtype("Accounts Receivable")
	require.True(t, ok)
	assert.Equal(t, domain.Operating, activity)

	activity, ok = accounting.ActivityForSubtype("Fixed Asset")
	require.True(t, ok)
	assert.Equal(t, domain.Investing, activity)

	activity, ok = accounting.ActivityForSubtype("Notes Payable")
	require.True(t, ok)
	assert.Equal(t, domain.Financing, activity)

	_, ok = accounting.ActivityForSubtype("Collectibles")
	assert.False(t, ok)
}

func TestIsCashSubtype(t *testing.T) {
	assert.True(t, accounting.IsCashSubtype("Cash"))
	assert.True(t, accounting.IsCashSubtype("Bank"))
	assert.False(t, accounting.IsCashSubtype("Accounts Receivable"))

	// Cash subtypes never carry a cash flow classification.
	_, ok := accounting.ActivityForSubtype("Cash")
	assert.False(t, ok)
}
