package handler

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/FleaMarket_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	validate     *Validator
	validateOnce sync.Once
)

// GetValidator returns the shared validator with the market's custom tags registered.
func GetValidator() *Validator {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("currency", validateCurrency)
		_ = v.RegisterValidation("templateid", validateTemplateID)
		validate = &Validator{validate: v}
	})
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// FormatValidationError flattens validation errors into field -> message without
// leaking Go struct names.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "currency":
			errs[field] = "Unknown currency"
		case "templateid":
			errs[field] = "Invalid template id"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}
	return errs
}

// ValidCurrencies are the template ids accepted as a price currency.
var ValidCurrencies = map[string]bool{
	domain.CurrencyRoubles: true,
	domain.CurrencyDollars: true,
	domain.CurrencyEuros:   true,
}

func validateCurrency(fl validator.FieldLevel) bool {
	c := fl.Field().String()
	if c == "" {
		return true
	}
	return ValidCurrencies[c]
}

// Template ids are short opaque tokens; anything with whitespace or control
// characters is rejected before it reaches a map lookup or a log line.
func validateTemplateID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if id == "" {
		return true
	}
	if len(id) > 64 {
		return false
	}
	return !strings.ContainsFunc(id, func(r rune) bool {
		return r <= ' ' || r == 0x7f
	})
}
