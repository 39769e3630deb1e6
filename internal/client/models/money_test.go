package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" food ")
	require.NoError(t, err)
	assert.Equal(t, Food, c)

	c, err = ParseCategory("BILLS")
	require.NoError(t, err)
	assert.Equal(t, Bills, c)

	_, err = ParseCategory("Travel")
	require.Error(t, err)
}

func TestParseTransactionType(t *testing.T) {
	tt, err := ParseTransactionType("income")
	require.NoError(t, err)
	assert.Equal(t, Income, tt)

	_, err = ParseTransactionType("transfer")
	require.Error(t, err)
}

func TestCredential(t *testing.T) {
	assert.False(t, Credential{}.IsAuthenticated())
	assert.False(t, Credential{Username: "ali"}.IsAuthenticated())
	assert.True(t, Credential{Token: "t"}.IsAuthenticated())

	assert.False(t, Credential{Token: "t"}.HasIdentity())
	assert.True(t, Credential{Email: "a@b.c"}.HasIdentity())
}

func TestTransaction_Day(t *testing.T) {
	d, err := Transaction{Date: "2025-03-14"}.Day()
	require.NoError(t, err)
	assert.Equal(t, 14, d.Day())

	_, err = Transaction{Date: "14/03/2025"}.Day()
	require.Error(t, err)
}
