package paperwave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingCache_SetGetFlush(t *testing.T) {
	lc := NewListingCache(time.Minute)

	lc.Set("search:contracts", []string{"a.pdf", "b.pdf"})
	got, ok := lc.Get("search:contracts")
	require.True(t, ok)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, got)

	_, ok = lc.Get("missing")
	assert.False(t, ok)

	lc.Flush()
	_, ok = lc.Get("search:contracts")
	assert.False(t, ok, "flush must drop every entry")
	assert.Zero(t, lc.Len())
}

func TestListingCache_Expiry(t *testing.T) {
	lc := NewListingCache(20 * time.Millisecond)
	lc.Set("k", "v")

	_, ok := lc.Get("k")
	require.True(t, ok)

	time.Sleep(50 * time.Millisecond)
	_, ok = lc.Get("k")
	assert.False(t, ok, "entries expire after the ttl")
}
