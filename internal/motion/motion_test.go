package motion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDelayIsLinearInIndex(t *testing.T) {
	t.Parallel()

	require.Equal(t, 50*time.Millisecond, SolutionsGrid.Delay(0))
	require.Equal(t, 110*time.Millisecond, SolutionsGrid.Delay(1))
	require.Equal(t, 890*time.Millisecond, SolutionsGrid.Delay(14))
	require.Equal(t, time.Duration(0), Hero.Delay(-3))
}

func TestDelayClampsToMax(t *testing.T) {
	t.Parallel()

	require.Equal(t, 300*time.Millisecond, PortfolioCards.Delay(3))
	require.Equal(t, time.Second, PortfolioCards.Delay(40))
}

func TestSecondsAndStyle(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0s", PortfolioCards.Seconds(0))
	require.Equal(t, "0.2s", PortfolioCards.Seconds(2))
	require.Equal(t, "animation-delay: 0.11s", SolutionsGrid.Style(1))
}

func TestPreset(t *testing.T) {
	t.Parallel()

	s, ok := Preset("stats")
	require.True(t, ok)
	require.Equal(t, Stats, s)

	_, ok = Preset("bounce")
	require.False(t, ok)
}
