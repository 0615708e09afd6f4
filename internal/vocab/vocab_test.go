package vocab

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIDForAllocatesDenseIncreasingIDs(t *testing.T) {
	v := New()
	a := v.IDFor("apple")
	b := v.IDFor("banana")
	aAgain := v.IDFor("apple")

	require.Equal(t, uint64(0), a)
	require.Equal(t, uint64(1), b)
	require.Equal(t, a, aAgain)
	require.Equal(t, 2, v.Len())
}

func TestTermIsInverseOfIDFor(t *testing.T) {
	v := New()
	id := v.IDFor("hello")
	term, ok := v.Term(id)
	require.True(t, ok)
	require.Equal(t, "hello", term)

	_, ok = v.Term(999)
	require.False(t, ok)
}

func TestLookupDoesNotAllocate(t *testing.T) {
	v := New()
	_, ok := v.Lookup("never-seen")
	require.False(t, ok)
	require.Equal(t, 0, v.Len())
}

func TestIDForIsSafeForConcurrentUse(t *testing.T) {
	v := New()
	var wg sync.WaitGroup
	ids := make([]uint64, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = v.IDFor("shared-term")
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		require.Equal(t, ids[0], id)
	}
	require.Equal(t, 1, v.Len())
}
