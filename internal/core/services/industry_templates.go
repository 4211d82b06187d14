package services

import "github.com/brightbooks/bright_books_app/internal/core/domain"

// industryTemplates holds the standard chart of accounts seeded for a new
// client, keyed by industry. Catalog maintenance lives with provisioning;
// these are the charts shipped with the backend.
var industryTemplates = map[string][]domain.TemplateAccount{
	"general": {
		{AccountNumber: "1000", Name: "Cash", AccountType: domain.Asset, AccountSubtype: "Cash", IsRequired: true, DisplayOrder: 1},
		{AccountNumber: "1100", Name: "Accounts Receivable", AccountType: domain.Asset, AccountSubtype: "Accounts Receivable", IsRequired: true, DisplayOrder: 2},
		{AccountNumber: "1500", Name: "Equipment", AccountType: domain.Asset, AccountSubtype: "Fixed Asset", DisplayOrder: 3},
		{AccountNumber: "2000", Name: "Accounts Payable", AccountType: domain.Liability, AccountSubtype: "Accounts Payable", IsRequired: true, DisplayOrder: 4},
		{AccountNumber: "2100", Name: "Credit Card Payable", AccountType: domain.Liability, AccountSubtype: "Credit Card", DisplayOrder: 5},
		{AccountNumber: "2200", Name: "Sales Tax Payable", AccountType: domain.Liability, AccountSubtype: "Sales Tax Payable", DisplayOrder: 6},
		{AccountNumber: "3000", Name: "Owner's Equity", AccountType: domain.Equity, AccountSubtype: "Owner's Equity", IsRequired: true, DisplayOrder: 7},
		{AccountNumber: "3900", Name: "Retained Earnings", AccountType: domain.Equity, AccountSubtype: "Retained Earnings", IsRequired: true, DisplayOrder: 8},
		{AccountNumber: "4000", Name: "Service Revenue", AccountType: domain.Revenue, AccountSubtype: "Service Revenue", IsRequired: true, DisplayOrder: 9},
		{AccountNumber: "5000", Name: "Rent Expense", AccountType: domain.Expense, AccountSubtype: "Operating Expense", DisplayOrder: 10},
		{AccountNumber: "5100", Name: "Utilities Expense", AccountType: domain.Expense, AccountSubtype: "Operating Expense", DisplayOrder: 11},
		{AccountNumber: "5200", Name: "Office Supplies", AccountType: domain.Expense, AccountSubtype: "Operating Expense", DisplayOrder: 12},
	},
	"retail": {
		{AccountNumber: "1000", Name: "Cash", AccountType: domain.Asset, AccountSubtype: "Cash", IsRequired: true, DisplayOrder: 1},
		{AccountNumber: "1100", Name: "Accounts Receivable", AccountType: domain.Asset, AccountSubtype: "Accounts Receivable", DisplayOrder: 2},
		{AccountNumber: "1200", Name: "Inventory", AccountType: domain.Asset, AccountSubtype: "Inventory", IsRequired: true, DisplayOrder: 3},
		{AccountNumber: "1500", Name: "Store Equipment", AccountType: domain.Asset, AccountSubtype: "Fixed Asset", DisplayOrder: 4},
		{AccountNumber: "2000", Name: "Accounts Payable", AccountType: domain.Liability, AccountSubtype: "Accounts Payable", IsRequired: true, DisplayOrder: 5},
		{AccountNumber: "2200", Name: "Sales Tax Payable", AccountType: domain.Liability, AccountSubtype: "Sales Tax Payable", IsRequired: true, DisplayOrder: 6},
		{AccountNumber: "3000", Name: "Owner's Equity", AccountType: domain.Equity, AccountSubtype: "Owner's Equity", IsRequired: true, DisplayOrder: 7},
		{AccountNumber: "3900", Name: "Retained Earnings", AccountType: domain.Equity, AccountSubtype: "Retained Earnings", IsRequired: true, DisplayOrder: 8},
		{AccountNumber: "4000", Name: "Sales Revenue", AccountType: domain.Revenue, AccountSubtype: "Sales Revenue", IsRequired: true, DisplayOrder: 9},
		{AccountNumber: "5000", Name: "Cost of Goods Sold", AccountType: domain.Expense, AccountSubtype: "Cost of Goods Sold", IsRequired: true, DisplayOrder: 10},
		{AccountNumber: "5100", Name: "Rent Expense", AccountType: domain.Expense, AccountSubtype: "Operating Expense", DisplayOrder: 11},
		{AccountNumber: "5200", Name: "Utilities Expense", AccountType: domain.Expense, AccountSubtype: "Operating Expense", DisplayOrder: 12},
	},
	"services": {
		{AccountNumber: "1000", Name: "Cash", AccountType: domain.Asset, AccountSubtype: "Cash", IsRequired: true, DisplayOrder: 1},
		{AccountNumber: "1100", Name: "Accounts Receivable", AccountType: domain.Asset, AccountSubtype: "Accounts Receivable", IsRequired: true, DisplayOrder: 2},
		{AccountNumber: "1300", Name: "Prepaid Expenses", AccountType: domain.Asset, AccountSubtype: "Prepaid Expenses", DisplayOrder: 3},
		{AccountNumber: "2000", Name: "Accounts Payable", AccountType: domain.Liability, AccountSubtype: "Accounts Payable", IsRequired: true, DisplayOrder: 4},
		{AccountNumber: "2300", Name: "Payroll Liabilities", AccountType: domain.Liability, AccountSubtype: "Payroll Liabilities", DisplayOrder: 5},
		{AccountNumber: "3000", Name: "Owner's Equity", AccountType: domain.Equity, AccountSubtype: "Owner's Equity", IsRequired: true, DisplayOrder: 6},
		{AccountNumber: "3900", Name: "Retained Earnings", AccountType: domain.Equity, AccountSubtype: "Retained Earnings", IsRequired: true, DisplayOrder: 7},
		{AccountNumber: "4000", Name: "Service Revenue", AccountType: domain.Revenue, AccountSubtype: "Service Revenue", IsRequired: true, DisplayOrder: 8},
		{AccountNumber: "5000", Name: "Salaries Expense", AccountType: domain.Expense, AccountSubtype: "Operating Expense", DisplayOrder: 9},
		{AccountNumber: "5100", Name: "Rent Expense", AccountType: domain.Expense, AccountSubtype: "Operating Expense", DisplayOrder: 10},
		{AccountNumber: "5300", Name: "Software Subscriptions", AccountType: domain.Expense, AccountSubtype: "Operating Expense", DisplayOrder: 11},
	},
}

// TemplateForIndustry returns the seeding template for an industry, in
// display order. Unknown industries fall back to the general chart.
func TemplateForIndustry(industry string) []domain.TemplateAccount {
	if rows, ok := industryTemplates[industry]; ok {
		return rows
	}
	return industryTemplates["general"]
}
