package order

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candlebot/internal/cart"
	"candlebot/internal/catalog"
	"candlebot/internal/session"
)

func TestSubmitFormatsAdminMessage(t *testing.T) {
	fx := newFlowFixture(t, 100)
	ctx := context.Background()
	fx.fillCart(t, 1, 2, 1)
	fx.sessions.SetDraftName(7, "Anna")
	fx.sessions.SetDraftPhone(7, "+7 999 123-45-67")

	dispatcher := NewDispatcher(fx.sessions, fx.engine, fx.notifier, 100)
	dispatcher.newRef = func() string { return "abcd1234" }

	result := dispatcher.Submit(ctx, 7)
	assert.Equal(t, Submitted, result)
	assert.True(t, result.Placed())

	require.Len(t, fx.notifier.texts, 1)
	text := fx.notifier.texts[0]
	assert.Contains(t, text, "NEW ORDER")
	assert.Contains(t, text, "Ref: #abcd1234")
	assert.Contains(t, text, "Customer: Anna")
	assert.Contains(t, text, "Phone: +7 999 123-45-67")
	assert.Contains(t, text, "- Lavender Dream (2 pc.)")
	assert.Contains(t, text, "- Vanilla Evening (1 pc.)")
	assert.Contains(t, text, "Total: 750 rub.")
}

func TestSubmitWithoutDraft(t *testing.T) {
	fx := newFlowFixture(t, 100)
	fx.fillCart(t, 1)

	dispatcher := NewDispatcher(fx.sessions, fx.engine, fx.notifier, 100)
	result := dispatcher.Submit(context.Background(), 7)

	assert.Equal(t, Submitted, result)
	require.Len(t, fx.notifier.texts, 1)
	assert.Contains(t, fx.notifier.texts[0], "Customer: not provided")
	assert.Contains(t, fx.notifier.texts[0], "Phone: not provided")
}

func TestSubmitFailureLeavesSessionIntact(t *testing.T) {
	fx := newFlowFixture(t, 100)
	fx.fillCart(t, 1)
	fx.sessions.SetDraftName(7, "Anna")
	fx.notifier.err = assert.AnError

	dispatcher := NewDispatcher(fx.sessions, fx.engine, fx.notifier, 100)
	result := dispatcher.Submit(context.Background(), 7)

	assert.Equal(t, DeliveryFailed, result)
	assert.False(t, result.Placed())
	assert.Equal(t, []int64{1}, fx.sessions.Cart(7))
	_, ok := fx.sessions.DraftOf(7)
	assert.True(t, ok)
}

func TestSubmitNoAdminResetsSession(t *testing.T) {
	fx := newFlowFixture(t, 0)
	fx.fillCart(t, 1)
	fx.sessions.SetDraftName(7, "Anna")

	dispatcher := NewDispatcher(fx.sessions, fx.engine, fx.notifier, 0)
	result := dispatcher.Submit(context.Background(), 7)

	assert.Equal(t, SubmittedNoAdmin, result)
	assert.True(t, result.Placed())
	assert.Empty(t, fx.notifier.texts)
	assert.Empty(t, fx.sessions.Cart(7))
	_, ok := fx.sessions.DraftOf(7)
	assert.False(t, ok)
}

func TestCustomerText(t *testing.T) {
	assert.Equal(t, msgOrderAccepted, Submitted.CustomerText())
	assert.Equal(t, msgOrderAccepted, SubmittedNoAdmin.CustomerText())
	assert.Equal(t, msgOrderFailed, DeliveryFailed.CustomerText())
}

func TestNewOrderRef(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		ref := newOrderRef()
		require.Len(t, ref, 8)
		assert.NotContains(t, ref, "-")
		assert.Equal(t, strings.ToLower(ref), ref)
		seen[ref] = struct{}{}
	}
	assert.Greater(t, len(seen), 90, "refs should be practically unique")
}

func TestAdminMessageSkipsUnresolvableItems(t *testing.T) {
	sessions := session.NewStore()
	store := catalog.NewStore([]catalog.Product{{ID: 1, Name: "Lavender Dream", Price: 300}})
	engine := cart.NewEngine(sessions, store)
	sessions.AppendToCart(7, 1)
	sessions.AppendToCart(7, 99)

	notifier := &fakeNotifier{}
	dispatcher := NewDispatcher(sessions, engine, notifier, 100)
	dispatcher.newRef = func() string { return "abcd1234" }

	result := dispatcher.Submit(context.Background(), 7)
	assert.Equal(t, Submitted, result)
	require.Len(t, notifier.texts, 1)
	assert.Contains(t, notifier.texts[0], "Lavender Dream")
	assert.NotContains(t, notifier.texts[0], "99")
	assert.Contains(t, notifier.texts[0], "Total: 300 rub.")
}
