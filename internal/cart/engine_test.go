package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candlebot/internal/catalog"
	"candlebot/internal/session"
)

func newTestEngine(t *testing.T, products []catalog.Product) (*Engine, *session.Store) {
	t.Helper()
	sessions := session.NewStore()
	return NewEngine(sessions, catalog.NewStore(products)), sessions
}

func threeCandles() []catalog.Product {
	return []catalog.Product{
		{ID: 1, Name: "Lavender Dream", Price: 300},
		{ID: 2, Name: "Vanilla Evening", Price: 150},
		{ID: 3, Name: "Cedar & Amber", Price: 450},
	}
}

func TestAdvanceWrapsForward(t *testing.T) {
	e, _ := newTestEngine(t, threeCandles())
	const userID = 7

	for _, want := range []int{1, 2, 0, 1} {
		got, err := e.Advance(userID, Next)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestAdvanceWrapsBackward(t *testing.T) {
	e, _ := newTestEngine(t, threeCandles())
	const userID = 7

	got, err := e.Advance(userID, Prev)
	require.NoError(t, err)
	assert.Equal(t, 2, got, "prev from index 0 wraps to the last product")

	got, err = e.Advance(userID, Prev)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestAdvanceNextThenPrevIsIdentity(t *testing.T) {
	e, sessions := newTestEngine(t, threeCandles())
	const userID = 7
	sessions.SetBrowseIndex(userID, 1)

	_, err := e.Advance(userID, Next)
	require.NoError(t, err)
	got, err := e.Advance(userID, Prev)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestAdvanceSingleProductStaysPut(t *testing.T) {
	e, _ := newTestEngine(t, threeCandles()[:1])
	const userID = 7

	for _, dir := range []Direction{Next, Prev, Next} {
		got, err := e.Advance(userID, dir)
		require.NoError(t, err)
		assert.Equal(t, 0, got)
	}
}

func TestAdvanceEmptyCatalog(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	_, err := e.Advance(7, Next)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestCurrentResetsDriftedCursor(t *testing.T) {
	e, sessions := newTestEngine(t, threeCandles())
	const userID = 7
	sessions.SetBrowseIndex(userID, 42)

	p, idx, err := e.Current(userID)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, 0, sessions.BrowseIndex(userID))
}

func TestAddUnknownProduct(t *testing.T) {
	e, sessions := newTestEngine(t, threeCandles())
	ctx := context.Background()

	_, err := e.Add(ctx, 7, 99)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Empty(t, sessions.Cart(7), "cart is untouched on unknown ids")
}

func TestSummarizeAggregatesInFirstSeenOrder(t *testing.T) {
	e, _ := newTestEngine(t, threeCandles())
	ctx := context.Background()
	const userID = 7

	for _, id := range []int64{1, 2, 1} {
		_, err := e.Add(ctx, userID, id)
		require.NoError(t, err)
	}

	sum := e.Summarize(userID)
	require.Len(t, sum.Lines, 2)
	assert.Equal(t, int64(1), sum.Lines[0].Product.ID)
	assert.Equal(t, 2, sum.Lines[0].Quantity)
	assert.Equal(t, int64(600), sum.Lines[0].Total)
	assert.Equal(t, int64(2), sum.Lines[1].Product.ID)
	assert.Equal(t, 1, sum.Lines[1].Quantity)
	assert.Equal(t, int64(750), sum.Total)
	assert.Equal(t, 3, sum.ItemCount)
}

func TestSummarizeTotalIsOrderIndependent(t *testing.T) {
	orders := [][]int64{
		{1, 2, 3},
		{3, 2, 1},
		{2, 1, 3},
	}
	ctx := context.Background()

	for _, ids := range orders {
		e, _ := newTestEngine(t, threeCandles())
		for _, id := range ids {
			_, err := e.Add(ctx, 7, id)
			require.NoError(t, err)
		}
		assert.Equal(t, int64(900), e.Summarize(7).Total)
	}
}

func TestSummarizeSkipsUnresolvableIDs(t *testing.T) {
	e, sessions := newTestEngine(t, threeCandles())
	const userID = 7

	// Simulate a cart that outlived a catalog rebuild.
	sessions.AppendToCart(userID, 1)
	sessions.AppendToCart(userID, 99)

	sum := e.Summarize(userID)
	require.Len(t, sum.Lines, 1)
	assert.Equal(t, int64(300), sum.Total)
	assert.Equal(t, 2, sum.ItemCount, "unresolvable units still count as cart content")
}

func TestSummarizeEmptyCart(t *testing.T) {
	e, _ := newTestEngine(t, threeCandles())

	sum := e.Summarize(7)
	assert.Empty(t, sum.Lines)
	assert.Zero(t, sum.Total)
	assert.Zero(t, sum.ItemCount)
}

func TestClear(t *testing.T) {
	e, sessions := newTestEngine(t, threeCandles())
	ctx := context.Background()
	const userID = 7

	assert.ErrorIs(t, e.Clear(ctx, userID), ErrAlreadyEmpty)

	_, err := e.Add(ctx, userID, 1)
	require.NoError(t, err)
	require.NoError(t, e.Clear(ctx, userID))
	assert.Empty(t, sessions.Cart(userID))

	assert.ErrorIs(t, e.Clear(ctx, userID), ErrAlreadyEmpty)
}
