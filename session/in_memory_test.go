package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/hupe1980/taleweaver/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertion)
var _ Store = (*InMemoryStore)(nil)

func TestInMemoryStore_LazyCreation(t *testing.T) {
	store := NewInMemoryStore()
	assert.Empty(t, store.History("never-seen"))

	history := store.AppendTurn("fresh", "q", "a")
	require.Len(t, history, 2)
	assert.Equal(t, core.RoleUser, history[0].Role)
	assert.Equal(t, core.RoleAssistant, history[1].Role)
}

func TestInMemoryStore_HistoryLengthLaw(t *testing.T) {
	const maxTurns = 3
	store := NewInMemoryStore(WithMaxTurns(maxTurns))

	for k := 1; k <= 8; k++ {
		store.AppendTurn("s", fmt.Sprintf("q%d", k), fmt.Sprintf("a%d", k))
		want := 2 * k
		if want > 2*maxTurns {
			want = 2 * maxTurns
		}
		assert.Len(t, store.History("s"), want, "after %d turns", k)
	}
}

func TestInMemoryStore_EvictsWholePairsFIFO(t *testing.T) {
	store := NewInMemoryStore(WithMaxTurns(2))
	store.AppendTurn("s", "q1", "a1")
	store.AppendTurn("s", "q2", "a2")
	store.AppendTurn("s", "q3", "a3")

	history := store.History("s")
	require.Len(t, history, 4)
	// Oldest pair (q1, a1) evicted; sequence stays turn-aligned.
	assert.Equal(t, "q2", history[0].Content)
	assert.Equal(t, "a2", history[1].Content)
	assert.Equal(t, "q3", history[2].Content)
	assert.Equal(t, "a3", history[3].Content)
	for i, m := range history {
		if i%2 == 0 {
			assert.Equal(t, core.RoleUser, m.Role)
		} else {
			assert.Equal(t, core.RoleAssistant, m.Role)
		}
	}
}

func TestInMemoryStore_SessionsIsolated(t *testing.T) {
	store := NewInMemoryStore()
	store.AppendTurn("a", "qa", "aa")
	store.AppendTurn("b", "qb", "ab")
	assert.Len(t, store.History("a"), 2)
	assert.Equal(t, "qb", store.History("b")[0].Content)
}

func TestInMemoryStore_SnapshotIsolation(t *testing.T) {
	store := NewInMemoryStore()
	store.AppendTurn("s", "q", "a")
	snap := store.History("s")
	snap[0].Content = "mutated"
	assert.Equal(t, "q", store.History("s")[0].Content)
}

func TestInMemoryStore_ConcurrentAppendsSameSession(t *testing.T) {
	const maxTurns = 4
	store := NewInMemoryStore(WithMaxTurns(maxTurns))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.AppendTurn("shared", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
		}(i)
	}
	wg.Wait()

	history := store.History("shared")
	assert.Len(t, history, 2*maxTurns)
	// Never an odd-length or misaligned history, even under contention.
	for i := 0; i < len(history); i += 2 {
		assert.Equal(t, core.RoleUser, history[i].Role)
		assert.Equal(t, core.RoleAssistant, history[i+1].Role)
	}
}
