package domain

// TemplateAccount is one row of an industry account template, supplied by
// an external provisioning process. Seeding pushes these through the normal
// account-creation contract; the catalog itself is not owned here.
type TemplateAccount struct {
	AccountNumber  string      `json:"accountNumber"`
	Name           string      `json:"name"`
	AccountType    AccountType `json:"accountType"`
	AccountSubtype string      `json:"accountSubtype"`
	Description    string      `json:"description"`
	IsRequired     bool        `json:"isRequired"`
	DisplayOrder   int         `json:"displayOrder"`
}
