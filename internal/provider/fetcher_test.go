package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTicker(t *testing.T) {
	valid := []string{"A", "AAPL", "MSFT", "BRK.B", "BF-B", "^GSPC", "7203.T", "aapl", "ABCDEFGHIJ"}
	for _, s := range valid {
		assert.NoError(t, ValidateTicker(s), "ticker %q", s)
	}

	invalid := []string{"", "###", " ", "AAPL MSFT", "$SPY", "ABCDEFGHIJK", ".AAPL", "-X", "^", "AA PL"}
	for _, s := range invalid {
		err := ValidateTicker(s)
		require.ErrorIs(t, err, ErrInvalidTicker, "ticker %q", s)
	}
}
