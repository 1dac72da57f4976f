package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNullString(t *testing.T) {
	assert.Nil(t, NewNullString(""))

	got := NewNullString("hello")
	if assert.NotNil(t, got) {
		assert.Equal(t, "hello", *got)
	}
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty("x"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.True(t, IsValidEmail("User.Name+tag@sub.example.org"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
}
