package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtraFlags_Set(t *testing.T) {
	var extras extraFlags

	require.NoError(t, extras.Set("1=2"))
	require.NoError(t, extras.Set("3"))
	require.NoError(t, extras.Set(" 4 = 5 "))

	assert.Equal(t, extraFlags{{ID: 1, Quantity: 2}, {ID: 3, Quantity: 1}, {ID: 4, Quantity: 5}}, extras)
	assert.Equal(t, "1=2,3=1,4=5", extras.String())
}

func TestExtraFlags_SetInvalid(t *testing.T) {
	tests := []string{"", "x=1", "0=1", "1=0", "1=-2", "1=a"}

	for _, value := range tests {
		t.Run(value, func(t *testing.T) {
			var extras extraFlags
			assert.Error(t, extras.Set(value))
			assert.Empty(t, extras)
		})
	}
}
