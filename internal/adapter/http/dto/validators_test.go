package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := RegisterRequest{
		Email:    "  alice@example.com  ",
		Name:     " Alice ",
		Password: "  pass1234  ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "alice@example.com", req.Email)
	assert.Equal(t, "Alice", req.Name)
	assert.Equal(t, "pass1234", req.Password)
}

func TestSanitizeStruct_EscapesHTML(t *testing.T) {
	req := RegisterRequest{
		Email:    "bob@example.com",
		Name:     "bob <script>alert('x')</script>",
		Password: "password123",
	}
	SanitizeStruct(&req)

	assert.Contains(t, req.Name, "&lt;script&gt;")
	assert.NotContains(t, req.Name, "<script>")
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}

func TestSanitizeStruct_CreateWalletRequest(t *testing.T) {
	req := CreateWalletRequest{
		Currency: " USD ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "USD", req.Currency)
}

// --- Custom Validator tests ---

func TestCurrencyName_Valid(t *testing.T) {
	cases := []string{"USD", "EUR", "RUB", "VND"}
	for _, tc := range cases {
		assert.True(t, currencyNameRe.MatchString(tc), "expected valid: %s", tc)
	}
}

func TestCurrencyName_Invalid(t *testing.T) {
	cases := []string{
		"usd",    // lowercase
		"US",     // too short
		"USDT",   // too long
		"U$D",    // symbol
		"",       // empty
		"US D",   // space
		"USD\n",  // newline
	}
	for _, tc := range cases {
		assert.False(t, currencyNameRe.MatchString(tc), "expected invalid: %s", tc)
	}
}
