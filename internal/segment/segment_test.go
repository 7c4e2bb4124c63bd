package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPages(t *testing.T) {
	t.Run("two pages", func(t *testing.T) {
		text := "--- Page 1 ---\nfirst page body\n--- Page 2 ---\nsecond page body"
		pages := SplitPages(text)
		require.Len(t, pages, 2)
		assert.Equal(t, 1, pages[0].Page)
		assert.Equal(t, "first page body", pages[0].RawText)
		assert.Equal(t, 2, pages[1].Page)
		assert.Equal(t, "second page body", pages[1].RawText)
	})

	t.Run("leading text before first marker discarded", func(t *testing.T) {
		text := "   \n--- Page 1 ---\nbody"
		pages := SplitPages(text)
		require.Len(t, pages, 1)
		assert.Equal(t, "body", pages[0].RawText)
	})

	t.Run("whitespace-only segment discarded", func(t *testing.T) {
		text := "--- Page 1 ---\nbody\n--- Page 2 ---\n   \n--- Page 3 ---\nlast"
		pages := SplitPages(text)
		require.Len(t, pages, 2)
		// Page numbers are positional, not read from markers.
		assert.Equal(t, 1, pages[0].Page)
		assert.Equal(t, 2, pages[1].Page)
		assert.Equal(t, "last", pages[1].RawText)
	})

	t.Run("no markers", func(t *testing.T) {
		pages := SplitPages("text without any page markers")
		require.Len(t, pages, 1)
		assert.Equal(t, "text without any page markers", pages[0].RawText)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, SplitPages(""))
		assert.Empty(t, SplitPages("   \n  "))
	})
}

func TestMarkerRoundTrip(t *testing.T) {
	text := Marker(1) + "\none\n" + Marker(2) + "\ntwo"
	pages := SplitPages(text)
	require.Len(t, pages, 2)
	assert.Equal(t, "one", pages[0].RawText)
	assert.Equal(t, "two", pages[1].RawText)
}

func TestDeclaredPageCount(t *testing.T) {
	n, ok := DeclaredPageCount("WorldTrips Claim Form\nPage 1 of 9\n...")
	require.True(t, ok)
	assert.Equal(t, 9, n)

	_, ok = DeclaredPageCount("no page count here")
	assert.False(t, ok)
}
