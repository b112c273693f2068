package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "08031234567", NormalizePhone("0803-123-4567"))
	assert.Equal(t, "2348031234567", NormalizePhone("+234 (803) 123 4567"))
	assert.Equal(t, "", NormalizePhone("no digits"))
}

func TestCanonicalPhone(t *testing.T) {
	// A valid Nigerian mobile number formats to E.164.
	assert.Equal(t, "+2348031234567", CanonicalPhone("0803 123 4567", "NG"))

	// Unparseable input falls back to the digit-only form.
	assert.Equal(t, "12345", CanonicalPhone("123-45", "NG"))
}
