package models

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestResolvePage(t *testing.T) {
	t.Run("rejects non-positive size", func(t *testing.T) {
		for _, size := range []int{0, -1, -50} {
			_, err := ResolvePage(0, size, 10)
			require.ErrorIs(t, err, ErrInvalidPageSize)
		}
	})

	t.Run("empty collection has one empty page", func(t *testing.T) {
		slice, err := ResolvePage(0, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, slice.TotalPages)
		assert.Equal(t, 0, slice.Len())
	})

	t.Run("empty collection rejects pages after the first", func(t *testing.T) {
		_, err := ResolvePage(1, 10, 0)
		require.ErrorIs(t, err, ErrOutOfRangePage)
	})

	t.Run("page past the end is out of range", func(t *testing.T) {
		_, err := ResolvePage(2, 10, 15)
		require.ErrorIs(t, err, ErrOutOfRangePage)
	})

	t.Run("negative page is out of range", func(t *testing.T) {
		_, err := ResolvePage(-1, 10, 15)
		require.ErrorIs(t, err, ErrOutOfRangePage)
	})

	t.Run("last page is truncated", func(t *testing.T) {
		slice, err := ResolvePage(1, 10, 15)
		require.NoError(t, err)
		assert.Equal(t, PageSlice{From: 10, To: 15, TotalPages: 2}, slice)
	})

	t.Run("exact multiple has no trailing page", func(t *testing.T) {
		slice, err := ResolvePage(1, 5, 10)
		require.NoError(t, err)
		assert.Equal(t, PageSlice{From: 5, To: 10, TotalPages: 2}, slice)

		_, err = ResolvePage(2, 5, 10)
		require.ErrorIs(t, err, ErrOutOfRangePage)
	})

	t.Run("size larger than any collection fits on one page", func(t *testing.T) {
		slice, err := ResolvePage(0, math.MaxInt, 3)
		require.NoError(t, err)
		assert.Equal(t, PageSlice{From: 0, To: 3, TotalPages: 1}, slice)

		_, err = ResolvePage(1, math.MaxInt, 3)
		require.ErrorIs(t, err, ErrOutOfRangePage)
	})

	t.Run("last page near the int limit", func(t *testing.T) {
		size := math.MaxInt/2 + 1
		slice, err := ResolvePage(1, size, math.MaxInt)
		require.NoError(t, err)
		assert.Equal(t, PageSlice{From: size, To: math.MaxInt, TotalPages: 2}, slice)
	})
}

// TestResolvePage_Properties checks that every accepted page starts at
// page*size and never holds more than size items.
func TestResolvePage_Properties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.OneOf(
			rapid.IntRange(1, 50),
			rapid.IntRange(math.MaxInt-1000, math.MaxInt),
		).Draw(rt, "size")
		total := rapid.IntRange(0, 500).Draw(rt, "total")
		page := rapid.IntRange(-2, 520).Draw(rt, "page")

		slice, err := ResolvePage(page, size, total)
		if err != nil {
			if !errors.Is(err, ErrOutOfRangePage) {
				rt.Fatalf("unexpected error %v", err)
			}
			wantPages := total / size
			if total%size != 0 || total == 0 {
				wantPages++
			}
			if page >= 0 && page < wantPages {
				rt.Fatalf("page %d of %d rejected (size=%d total=%d)", page, wantPages, size, total)
			}
			return
		}

		if slice.From != page*size {
			rt.Fatalf("From = %d, want %d", slice.From, page*size)
		}
		if n := slice.Len(); n < 0 || n > size {
			rt.Fatalf("page holds %d items, size is %d", n, size)
		}
		if slice.To > total {
			rt.Fatalf("To = %d exceeds total %d", slice.To, total)
		}
		if total > 0 && slice.Len() == 0 {
			rt.Fatalf("non-empty collection produced an empty page")
		}
	})
}
