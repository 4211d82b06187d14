package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
)

// init registers custom binding rules with gin's validator engine so any
// package binding these DTOs gets them.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("accounttype", validateAccountType)
	}
}

// validateAccountType implements the `accounttype` binding tag.
func validateAccountType(fl validator.FieldLevel) bool {
	return domain.AccountType(fl.Field().String()).IsValid()
}
