package handler

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FleaMarket_Go/internal/domain"
)

type quoteShape struct {
	Currency string `validate:"required,currency"`
	Template string `validate:"required,templateid"`
	Limit    int    `validate:"min=1,max=500"`
}

func TestValidator_Currency(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name     string
		currency string
		wantErr  bool
	}{
		// CASE 1: BEST CASE
		{"roubles", domain.CurrencyRoubles, false},
		{"dollars", domain.CurrencyDollars, false},
		{"euros", domain.CurrencyEuros, false},

		// CASE 2: INVALID
		{"missing", "", true},
		{"symbol instead of id", "RUB", true},
		{"item template", "5447a9cd4bdc2dbd208b4567", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(quoteShape{Currency: tt.currency, Template: "ammo", Limit: 1})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_TemplateID(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name    string
		tpl     string
		wantErr bool
	}{
		// CASE 1: BEST CASE
		{"object id", "5447a9cd4bdc2dbd208b4567", false},

		// CASE 2: BOUNDARY
		{"64 chars", strings.Repeat("a", 64), false},
		{"65 chars", strings.Repeat("a", 65), true},

		// CASE 3: HOSTILE
		{"space", "ammo box", true},
		{"newline", "ammo\n", true},
		{"null byte", "ammo\x00", true},
		{"delete char", "ammo\x7f", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(quoteShape{Currency: domain.CurrencyRoubles, Template: tt.tpl, Limit: 1})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, FormatValidationError(nil))
	})

	t.Run("not a validation error", func(t *testing.T) {
		errs := FormatValidationError(errors.New("boom"))
		assert.Equal(t, "Invalid request format", errs["error"])
	})

	t.Run("field messages", func(t *testing.T) {
		err := GetValidator().ValidateStruct(quoteShape{Currency: "RUB", Limit: 501})
		require.Error(t, err)

		errs := FormatValidationError(err)
		assert.Equal(t, "Unknown currency", errs["currency"])
		assert.Equal(t, "This field is required", errs["template"])
		assert.Equal(t, "Must be at most 500", errs["limit"])
	})
}
