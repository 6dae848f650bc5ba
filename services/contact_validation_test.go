package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thekpsgroup/contractorjobcosting-backend/types"
)

func validSubmission() types.ContactSubmission {
	return types.ContactSubmission{
		Name:    "Jane Doe",
		Email:   "jane@acme.com",
		Message: "We need help costing our jobs.",
	}
}

func TestContactValidator_ValidSubmission(t *testing.T) {
	v := NewContactValidator()

	normalized, fieldErr := v.Validate(validSubmission())
	require.Nil(t, fieldErr)
	assert.Equal(t, "Jane Doe", normalized.Name)
	assert.Equal(t, "jane@acme.com", normalized.Email)
}

func TestContactValidator_NameBounds(t *testing.T) {
	v := NewContactValidator()

	sub := validSubmission()
	sub.Name = "Jo"
	_, fieldErr := v.Validate(sub)
	assert.Nil(t, fieldErr, "2-character name is the minimum and passes")

	sub.Name = "J"
	_, fieldErr = v.Validate(sub)
	require.NotNil(t, fieldErr)
	assert.Equal(t, "name", fieldErr.Field)

	sub.Name = strings.Repeat("a", 101)
	_, fieldErr = v.Validate(sub)
	require.NotNil(t, fieldErr)
	assert.Equal(t, "name", fieldErr.Field)
}

func TestContactValidator_MessageBounds(t *testing.T) {
	v := NewContactValidator()

	sub := validSubmission()
	sub.Message = strings.Repeat("x", 10)
	_, fieldErr := v.Validate(sub)
	assert.Nil(t, fieldErr, "exactly 10 characters passes")

	sub.Message = strings.Repeat("x", 9)
	_, fieldErr = v.Validate(sub)
	require.NotNil(t, fieldErr)
	assert.Equal(t, "message", fieldErr.Field)

	sub.Message = strings.Repeat("x", 2001)
	_, fieldErr = v.Validate(sub)
	require.NotNil(t, fieldErr)
	assert.Equal(t, "message", fieldErr.Field)
}

func TestContactValidator_BoundsCountCharactersNotBytes(t *testing.T) {
	v := NewContactValidator()

	// "Ä" is one character in two bytes and stays below the two-character
	// name minimum.
	sub := validSubmission()
	sub.Name = "Ä"
	_, fieldErr := v.Validate(sub)
	require.NotNil(t, fieldErr)
	assert.Equal(t, "name", fieldErr.Field)

	sub.Name = "Äb"
	_, fieldErr = v.Validate(sub)
	assert.Nil(t, fieldErr, "two characters pass regardless of byte width")

	// 1500 CJK characters take 4500 bytes but sit under the 2000-character
	// message maximum.
	sub = validSubmission()
	sub.Message = strings.Repeat("語", 1500)
	_, fieldErr = v.Validate(sub)
	assert.Nil(t, fieldErr)

	sub.Message = strings.Repeat("語", 2001)
	_, fieldErr = v.Validate(sub)
	require.NotNil(t, fieldErr)
	assert.Equal(t, "message", fieldErr.Field)

	sub = validSubmission()
	sub.Company = strings.Repeat("ü", 150)
	_, fieldErr = v.Validate(sub)
	assert.Nil(t, fieldErr, "150 characters is the company maximum")
}

func TestContactValidator_EmailNormalization(t *testing.T) {
	v := NewContactValidator()

	sub := validSubmission()
	sub.Email = "  USER@Example.COM "
	normalized, fieldErr := v.Validate(sub)
	require.Nil(t, fieldErr)
	assert.Equal(t, "user@example.com", normalized.Email)
}

func TestContactValidator_EmailRejected(t *testing.T) {
	v := NewContactValidator()

	for _, email := range []string{"", "not-an-email", "missing@tld@twice.com"} {
		sub := validSubmission()
		sub.Email = email
		_, fieldErr := v.Validate(sub)
		require.NotNil(t, fieldErr, "email %q should fail", email)
		assert.Equal(t, "email", fieldErr.Field)
	}

	sub := validSubmission()
	sub.Email = strings.Repeat("a", 250) + "@example.com"
	_, fieldErr := v.Validate(sub)
	require.NotNil(t, fieldErr)
	assert.Equal(t, "email", fieldErr.Field)
}

func TestContactValidator_Phone(t *testing.T) {
	v := NewContactValidator()

	sub := validSubmission()
	sub.Phone = ""
	_, fieldErr := v.Validate(sub)
	assert.Nil(t, fieldErr, "phone is optional")

	sub.Phone = "+1 (469) 534-3392"
	_, fieldErr = v.Validate(sub)
	assert.Nil(t, fieldErr)

	for _, phone := range []string{"12345", "call me maybe", strings.Repeat("1", 21)} {
		sub.Phone = phone
		_, fieldErr = v.Validate(sub)
		require.NotNil(t, fieldErr, "phone %q should fail", phone)
		assert.Equal(t, "phone", fieldErr.Field)
	}
}

func TestContactValidator_CompanyOptional(t *testing.T) {
	v := NewContactValidator()

	sub := validSubmission()
	sub.Company = ""
	_, fieldErr := v.Validate(sub)
	assert.Nil(t, fieldErr)

	sub.Company = strings.Repeat("a", 151)
	_, fieldErr = v.Validate(sub)
	require.NotNil(t, fieldErr)
	assert.Equal(t, "company", fieldErr.Field)
}

func TestContactValidator_FirstErrorWins(t *testing.T) {
	v := NewContactValidator()

	// Both name and message are invalid; only name is reported.
	sub := types.ContactSubmission{Name: "J", Email: "bad", Message: "short"}
	_, fieldErr := v.Validate(sub)
	require.NotNil(t, fieldErr)
	assert.Equal(t, "name", fieldErr.Field)
}

func TestContactValidator_HoneypotCaughtAsBackstop(t *testing.T) {
	v := NewContactValidator()

	sub := validSubmission()
	sub.Website = "http://spam.example"
	_, fieldErr := v.Validate(sub)
	require.NotNil(t, fieldErr)
	assert.Equal(t, "website", fieldErr.Field)
}
