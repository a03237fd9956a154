package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candlebot/core/telegram/state"
)

func TestCartAppendAndClear(t *testing.T) {
	s := NewStore()

	assert.Empty(t, s.Cart(1))

	s.AppendToCart(1, 10)
	s.AppendToCart(1, 20)
	s.AppendToCart(1, 10)
	assert.Equal(t, []int64{10, 20, 10}, s.Cart(1))

	require.True(t, s.ClearCart(1))
	assert.Empty(t, s.Cart(1))
	assert.False(t, s.ClearCart(1), "clearing an empty cart reports no-op")
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	s := NewStore()

	s.AppendToCart(1, 10)
	s.AppendToCart(2, 20)

	assert.Equal(t, []int64{10}, s.Cart(1))
	assert.Equal(t, []int64{20}, s.Cart(2))
}

func TestCartReturnsCopy(t *testing.T) {
	s := NewStore()
	s.AppendToCart(1, 10)

	got := s.Cart(1)
	got[0] = 99

	assert.Equal(t, []int64{10}, s.Cart(1))
}

func TestDraftLifecycle(t *testing.T) {
	s := NewStore()

	_, ok := s.DraftOf(1)
	assert.False(t, ok)

	s.SetDraftName(1, "Anna")
	draft, ok := s.DraftOf(1)
	require.True(t, ok)
	assert.Equal(t, "Anna", draft.Name)
	assert.Empty(t, draft.Phone)

	s.SetDraftPhone(1, "+7 999 123-45-67")
	draft, ok = s.DraftOf(1)
	require.True(t, ok)
	assert.Equal(t, "Anna", draft.Name)
	assert.Equal(t, "+7 999 123-45-67", draft.Phone)

	s.ClearDraft(1)
	_, ok = s.DraftOf(1)
	assert.False(t, ok)
}

func TestStateLifecycle(t *testing.T) {
	s := NewStore()

	assert.Equal(t, state.StateIdle, s.GetState(1))
	assert.False(t, s.HasState(1))
	assert.False(t, s.InProgress(1))

	s.SetState(1, "order_name")
	assert.Equal(t, state.State("order_name"), s.GetState(1))
	assert.True(t, s.HasState(1))
	assert.True(t, s.InProgress(1))

	s.ClearState(1)
	assert.Equal(t, state.StateIdle, s.GetState(1))
	assert.False(t, s.InProgress(1))
}

func TestTempData(t *testing.T) {
	s := NewStore()

	_, ok := s.GetTemp(1, "awaiting_phone")
	assert.False(t, ok)

	s.SetTemp(1, "awaiting_phone", true)
	v, ok := s.GetTemp(1, "awaiting_phone")
	require.True(t, ok)
	assert.Equal(t, true, v)

	s.ClearTemp(1, "awaiting_phone")
	_, ok = s.GetTemp(1, "awaiting_phone")
	assert.False(t, ok)
}

func TestBrowseIndex(t *testing.T) {
	s := NewStore()

	assert.Equal(t, 0, s.BrowseIndex(1))
	s.SetBrowseIndex(1, 4)
	assert.Equal(t, 4, s.BrowseIndex(1))
}

func TestCount(t *testing.T) {
	s := NewStore()

	assert.Equal(t, 0, s.Count())
	s.AppendToCart(1, 10)
	s.SetState(2, "order_name")
	assert.Equal(t, 2, s.Count())
}

func TestConcurrentAccess(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.AppendToCart(userID, int64(j))
				s.SetBrowseIndex(userID, j)
				_ = s.Cart(userID)
				_ = s.Snapshot(userID)
			}
		}(int64(i % 4))
	}
	wg.Wait()

	total := 0
	for userID := int64(0); userID < 4; userID++ {
		total += len(s.Cart(userID))
	}
	assert.Equal(t, 1600, total)
}
