package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUtils(t *testing.T) {

	t.Run("Min/Max", func(t *testing.T) {
		require.Equal(t, 3, Min(3, 15))
		require.Equal(t, 1<<24, Max(1<<24, 100000))
		require.Equal(t, -1.5, Min(-1.5, 0))
	})

	t.Run("Abs", func(t *testing.T) {
		require.Equal(t, int16(3), Abs(int16(-3)))
		require.Equal(t, int16(3), Abs(int16(3)))
		require.Equal(t, 2.5, Abs(-2.5))
		require.Equal(t, 0.0, Abs(0.0))
	})

	t.Run("IsMask", func(t *testing.T) {
		for _, x := range []uint64{0, 1, 3, 0x1FF, 0x1FFF, 1<<63 - 1} {
			require.True(t, IsMask(x), x)
		}
		for _, x := range []uint64{2, 4, 0x200, 0x1FE, 5} {
			require.False(t, IsMask(x), x)
		}
	})

	t.Run("AllDistinct", func(t *testing.T) {
		require.True(t, AllDistinct([]int{1, 2, 3}))
		require.False(t, AllDistinct([]int{1, 2, 1}))
		require.True(t, AllDistinct([][2]bool{{true, false}, {false, true}}))
		require.True(t, AllDistinct([]string{}))
	})

	t.Run("CountIf", func(t *testing.T) {
		require.Equal(t, 2, CountIf([]int{1, 2, 3, 4}, func(x int) bool { return x%2 == 0 }))
	})

	t.Run("ToFloat64", func(t *testing.T) {
		require.Equal(t, []float64{1, -2, 3}, ToFloat64([]int16{1, -2, 3}))
	})
}
