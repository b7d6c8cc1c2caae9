package gitkit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gitkit.dev/gitkit"
)

func TestTimeCompare(t *testing.T) {
	t.Run("compares the UTC instant, not wall-clock fields", func(t *testing.T) {
		a := gitkit.Time{Seconds: 3600, Offset: 0}
		b := gitkit.Time{Seconds: 0, Offset: 60}
		require.Equal(t, 1, a.Compare(b), "01:00 UTC is after 00:00+01:00")
		require.Equal(t, -1, b.Compare(a))
		require.Equal(t, 0, a.Compare(a))
	})

	t.Run("offset shifts the instant by minutes", func(t *testing.T) {
		base := gitkit.Time{Seconds: 0, Offset: 0}
		shifted := gitkit.Time{Seconds: -60, Offset: 1}
		require.True(t, base.Equal(shifted))
	})
}

func TestNewSignature(t *testing.T) {
	t.Run("preserves the zone offset in minutes", func(t *testing.T) {
		when := time.Date(2024, 6, 1, 15, 4, 5, 0, time.FixedZone("", 5*3600+1800))
		sig := gitkit.NewSignature("A", "a@example.com", when)
		require.Equal(t, when.Unix(), sig.When.Seconds)
		require.Equal(t, 330, sig.When.Offset)
	})
}
