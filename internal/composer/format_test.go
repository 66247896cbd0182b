package composer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_BrazilianReais(t *testing.T) {
	f := DefaultFormatter()

	assert.Equal(t, "R$ 15,00", f.Format(decimal.RequireFromString("15")))
	assert.Equal(t, "R$ 1.234,50", f.Format(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "R$ 0,00", f.Format(decimal.Zero))
}

func TestFormatter_Locale(t *testing.T) {
	f, err := NewFormatter("en-US", "$")
	require.NoError(t, err)

	assert.Equal(t, "$ 19.90", f.Format(decimal.RequireFromString("19.9")))
	assert.Equal(t, "$ 1,000.01", f.Format(decimal.RequireFromString("1000.005")))
}

func TestNewFormatter_InvalidLocale(t *testing.T) {
	_, err := NewFormatter("not a locale!", "$")
	assert.Error(t, err)
}

func TestFormatter_KeepsEveryDigit(t *testing.T) {
	f := DefaultFormatter()

	assert.Equal(t, "R$ 12.345.678.901.234.567,89", f.Format(decimal.RequireFromString("12345678901234567.89")))
	assert.Equal(t, "R$ 100.000,00", f.Format(decimal.RequireFromString("99999.999")))
	assert.Equal(t, "R$ -1.234,50", f.Format(decimal.RequireFromString("-1234.5")))
	assert.Equal(t, "R$ 0,10", f.Format(decimal.RequireFromString("0.1")))
}

func TestFormatter_NoSymbol(t *testing.T) {
	f, err := NewFormatter("en-US", "")
	require.NoError(t, err)

	assert.Equal(t, "1,234,567.00", f.Format(decimal.NewFromInt(1234567)))
}
