package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	t.Setenv("RESTO_TEST_KEY", "value")
	assert.Equal(t, "value", Getenv("RESTO_TEST_KEY", "fallback"))

	t.Setenv("RESTO_TEST_KEY", "")
	assert.Equal(t, "fallback", Getenv("RESTO_TEST_KEY", "fallback"))

	assert.Equal(t, "fallback", Getenv("RESTO_TEST_MISSING_KEY", "fallback"))
}
