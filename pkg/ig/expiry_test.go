package ig_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dehesa/finance-ig-sub001/pkg/ig"
)

func TestParseExpiry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		kind ig.ExpiryKind
	}{
		{"none", "-", ig.ExpiryNone},
		{"daily funded uppercase", "DFB", ig.ExpiryDailyFunded},
		{"daily funded lowercase", "dfb", ig.ExpiryDailyFunded},
		{"day-month-year", "15-DEC-24", ig.ExpiryForward},
		{"month-year", "DEC-24", ig.ExpiryForward},
		{"iso timestamp", "2024-12-15T00:00:00", ig.ExpiryForward},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			expiry, err := ig.ParseExpiry(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, expiry.Kind())
		})
	}

	t.Run("unrecognized", func(t *testing.T) {
		t.Parallel()

		_, err := ig.ParseExpiry("not-a-date")
		require.Error(t, err)
	})
}

func TestExpiry_StringRoundTrip(t *testing.T) {
	t.Parallel()

	t.Run("month-year re-encodes to last day of month", func(t *testing.T) {
		t.Parallel()

		expiry, err := ig.ParseExpiry("DEC-24")
		require.NoError(t, err)
		assert.Equal(t, "DEC-24", expiry.String())
		assert.Equal(t, 31, expiry.Date().Day())
	})

	t.Run("day-month-year preserved", func(t *testing.T) {
		t.Parallel()

		expiry, err := ig.ParseExpiry("15-DEC-24")
		require.NoError(t, err)
		assert.Equal(t, "15-DEC-24", expiry.String())
	})

	t.Run("none", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "-", ig.NewNoneExpiry().String())
	})

	t.Run("daily funded", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "DFB", ig.NewDailyFundedExpiry().String())
	})
}

func TestExpiry_JSON(t *testing.T) {
	t.Parallel()

	original := ig.NewForwardExpiry(time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC))

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Equal(t, `"15-DEC-24"`, string(data))

	var decoded ig.Expiry

	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)
	assert.Equal(t, ig.ExpiryForward, decoded.Kind())
	assert.Equal(t, 2024, decoded.Date().Year())
}
