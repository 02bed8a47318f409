package internal

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.00", "100"},
		{"12.3", "1230"},
		{"12.34", "1234"},
		{"0", "000"},
		{"0.00", "000"},
		{"5", "500"},
		{"1.", "100"},
		{".5", "050"},
		{"007.10", "710"},
		{" 7 ", "700"},
		{"1,234.56", "123456"},
		{"1.004", "100"},
		{"1.005", "101"},
		{"0.999", "100"},
		{"99.995", "10000"},
		{"12.3456789", "1235"},
	}
	for _, c := range cases {
		got, err := FormatAmount(c.in)
		require.NoError(t, err, c.in)
		require.Equal(t, c.want, got, c.in)
	}
}

func TestFormatAmountRejectsNonDecimal(t *testing.T) {
	for _, in := range []string{"", " ", ".", "abc", "-1.00", "+1", "1.2.3", "1e3", "12,34.5x"} {
		_, err := FormatAmount(in)
		require.Error(t, err, in)
		require.True(t, IsValidationError(err), in)
	}
}
