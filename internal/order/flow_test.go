package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candlebot/core/telegram/state"
	"candlebot/internal/cart"
	"candlebot/internal/catalog"
	"candlebot/internal/session"
)

type fakeNotifier struct {
	err     error
	chatIDs []int64
	texts   []string
}

func (f *fakeNotifier) Notify(_ context.Context, chatID int64, text string) error {
	if f.err != nil {
		return f.err
	}
	f.chatIDs = append(f.chatIDs, chatID)
	f.texts = append(f.texts, text)
	return nil
}

type flowFixture struct {
	sessions *session.Store
	engine   *cart.Engine
	notifier *fakeNotifier
	flow     *Flow
}

func newFlowFixture(t *testing.T, adminChatID int64) *flowFixture {
	t.Helper()
	sessions := session.NewStore()
	store := catalog.NewStore([]catalog.Product{
		{ID: 1, Name: "Lavender Dream", Price: 300},
		{ID: 2, Name: "Vanilla Evening", Price: 150},
	})
	engine := cart.NewEngine(sessions, store)
	notifier := &fakeNotifier{}
	dispatcher := NewDispatcher(sessions, engine, notifier, adminChatID)
	dispatcher.newRef = func() string { return "abcd1234" }
	return &flowFixture{
		sessions: sessions,
		engine:   engine,
		notifier: notifier,
		flow:     NewFlow(sessions, engine, dispatcher),
	}
}

func (fx *flowFixture) fillCart(t *testing.T, ids ...int64) {
	t.Helper()
	for _, id := range ids {
		_, err := fx.engine.Add(context.Background(), 7, id)
		require.NoError(t, err)
	}
}

func TestStartWithEmptyCart(t *testing.T) {
	fx := newFlowFixture(t, 100)
	ctx := context.Background()

	reply := fx.flow.Start(ctx, 7)
	assert.Equal(t, msgCartEmpty, reply.Text)
	assert.True(t, reply.EditMessage)
	assert.False(t, fx.sessions.InProgress(7))
}

func TestStartShowsSummaryAndAsksName(t *testing.T) {
	fx := newFlowFixture(t, 100)
	ctx := context.Background()
	fx.fillCart(t, 1, 2, 1)

	reply := fx.flow.Start(ctx, 7)
	assert.True(t, reply.EditMessage)
	assert.Contains(t, reply.Text, "Checkout")
	assert.Contains(t, reply.Text, "Lavender Dream")
	assert.Contains(t, reply.Text, "x2")
	assert.Contains(t, reply.Text, "750 rub.")
	assert.Contains(t, reply.Text, "Please enter your name:")
	assert.Equal(t, StateName, fx.sessions.GetState(7))
}

func TestStartDiscardsStaleDraftAndLegacyFlag(t *testing.T) {
	fx := newFlowFixture(t, 100)
	ctx := context.Background()
	fx.fillCart(t, 1)

	fx.sessions.SetDraftName(7, "Old Name")
	fx.sessions.SetTemp(7, legacyAwaitingPhoneKey, true)

	fx.flow.Start(ctx, 7)

	_, ok := fx.sessions.DraftOf(7)
	assert.False(t, ok, "stale draft must not leak into a new dialog")
	_, ok = fx.sessions.GetTemp(7, legacyAwaitingPhoneKey)
	assert.False(t, ok)
}

func TestHappyPath(t *testing.T) {
	fx := newFlowFixture(t, 100)
	ctx := context.Background()
	fx.fillCart(t, 1, 2)

	fx.flow.Start(ctx, 7)

	reply := fx.flow.HandleText(ctx, 7, "  Anna  ")
	assert.Contains(t, reply.Text, "Anna")
	assert.Contains(t, reply.Text, "phone")
	assert.Equal(t, StatePhone, fx.sessions.GetState(7))

	reply = fx.flow.HandleText(ctx, 7, "+7 999 123-45-67")
	assert.Equal(t, msgOrderAccepted, reply.Text)
	assert.Equal(t, state.StateIdle, fx.sessions.GetState(7))
	assert.Empty(t, fx.sessions.Cart(7), "cart is cleared after a placed order")
	_, ok := fx.sessions.DraftOf(7)
	assert.False(t, ok)

	require.Len(t, fx.notifier.texts, 1)
	assert.Equal(t, int64(100), fx.notifier.chatIDs[0])
	assert.Contains(t, fx.notifier.texts[0], "Anna")
	assert.Contains(t, fx.notifier.texts[0], "+7 999 123-45-67")
	assert.Contains(t, fx.notifier.texts[0], "450 rub.")
}

func TestShortNameIsRejected(t *testing.T) {
	fx := newFlowFixture(t, 100)
	ctx := context.Background()
	fx.fillCart(t, 1)
	fx.flow.Start(ctx, 7)

	for _, input := range []string{"A", "  X ", ""} {
		reply := fx.flow.HandleText(ctx, 7, input)
		assert.Equal(t, msgNameShort, reply.Text)
		assert.Equal(t, StateName, fx.sessions.GetState(7), "rejection keeps the dialog at the name step")
	}

	_, ok := fx.sessions.DraftOf(7)
	assert.False(t, ok)
}

func TestTwoRuneNameIsAccepted(t *testing.T) {
	fx := newFlowFixture(t, 100)
	ctx := context.Background()
	fx.fillCart(t, 1)
	fx.flow.Start(ctx, 7)

	reply := fx.flow.HandleText(ctx, 7, "Ян")
	assert.NotEqual(t, msgNameShort, reply.Text)
	assert.Equal(t, StatePhone, fx.sessions.GetState(7))
}

func TestShortPhoneIsRejected(t *testing.T) {
	fx := newFlowFixture(t, 100)
	ctx := context.Background()
	fx.fillCart(t, 1)
	fx.flow.Start(ctx, 7)
	fx.flow.HandleText(ctx, 7, "Anna")

	for _, input := range []string{"123", "123-45-67", "phone"} {
		reply := fx.flow.HandleText(ctx, 7, input)
		assert.Equal(t, msgPhoneBad, reply.Text)
		assert.Equal(t, StatePhone, fx.sessions.GetState(7))
	}
	assert.Empty(t, fx.notifier.texts, "no order is dispatched before a valid phone")
}

func TestNonDigitNoiseInPhoneIsTolerated(t *testing.T) {
	fx := newFlowFixture(t, 100)
	ctx := context.Background()
	fx.fillCart(t, 1)
	fx.flow.Start(ctx, 7)
	fx.flow.HandleText(ctx, 7, "Anna")

	reply := fx.flow.HandleText(ctx, 7, "(899) 912-34-56 ext 7")
	assert.Equal(t, msgOrderAccepted, reply.Text)
}

func TestRejectNonTextKeepsState(t *testing.T) {
	fx := newFlowFixture(t, 100)
	ctx := context.Background()
	fx.fillCart(t, 1)
	fx.flow.Start(ctx, 7)

	reply := fx.flow.RejectNonText(7)
	assert.Equal(t, msgTextOnly, reply.Text)
	assert.Equal(t, StateName, fx.sessions.GetState(7))
}

func TestCancelKeepsCart(t *testing.T) {
	fx := newFlowFixture(t, 100)
	ctx := context.Background()
	fx.fillCart(t, 1, 2)
	fx.flow.Start(ctx, 7)
	fx.flow.HandleText(ctx, 7, "Anna")

	reply := fx.flow.Cancel(ctx, 7)
	assert.Equal(t, msgCancelled, reply.Text)
	assert.Equal(t, state.StateIdle, fx.sessions.GetState(7))
	assert.Equal(t, []int64{1, 2}, fx.sessions.Cart(7), "cancelling the dialog keeps the cart")
	_, ok := fx.sessions.DraftOf(7)
	assert.False(t, ok)
}

func TestCancelOutsideDialog(t *testing.T) {
	fx := newFlowFixture(t, 100)

	reply := fx.flow.Cancel(context.Background(), 7)
	assert.Equal(t, msgNothingToCancel, reply.Text)
}

func TestDeliveryFailureKeepsOrderData(t *testing.T) {
	fx := newFlowFixture(t, 100)
	ctx := context.Background()
	fx.fillCart(t, 1, 2)
	fx.flow.Start(ctx, 7)
	fx.flow.HandleText(ctx, 7, "Anna")

	fx.notifier.err = assert.AnError
	reply := fx.flow.HandleText(ctx, 7, "89991234567")
	assert.Equal(t, msgOrderFailed, reply.Text)

	// The dialog has exited, but everything needed for a retry survives.
	assert.Equal(t, state.StateIdle, fx.sessions.GetState(7))
	assert.Equal(t, []int64{1, 2}, fx.sessions.Cart(7))
	draft, ok := fx.sessions.DraftOf(7)
	require.True(t, ok)
	assert.Equal(t, "Anna", draft.Name)
	assert.Equal(t, "89991234567", draft.Phone)
}

func TestRetryAfterDeliveryFailure(t *testing.T) {
	fx := newFlowFixture(t, 100)
	ctx := context.Background()
	fx.fillCart(t, 1)
	fx.flow.Start(ctx, 7)
	fx.flow.HandleText(ctx, 7, "Anna")

	fx.notifier.err = assert.AnError
	fx.flow.HandleText(ctx, 7, "89991234567")

	// Channel recovers; the user starts over from the cart.
	fx.notifier.err = nil
	reply := fx.flow.Start(ctx, 7)
	assert.Contains(t, reply.Text, "Please enter your name:")

	fx.flow.HandleText(ctx, 7, "Anna")
	reply = fx.flow.HandleText(ctx, 7, "89991234567")
	assert.Equal(t, msgOrderAccepted, reply.Text)
	assert.Empty(t, fx.sessions.Cart(7))
	require.Len(t, fx.notifier.texts, 1)
}

func TestNoAdminChatCompletesOrder(t *testing.T) {
	fx := newFlowFixture(t, 0)
	ctx := context.Background()
	fx.fillCart(t, 1)
	fx.flow.Start(ctx, 7)
	fx.flow.HandleText(ctx, 7, "Anna")

	reply := fx.flow.HandleText(ctx, 7, "89991234567")
	assert.Equal(t, msgOrderAccepted, reply.Text, "the customer never learns the channel is missing")
	assert.Empty(t, fx.sessions.Cart(7))
	assert.Empty(t, fx.notifier.texts)
	assert.Equal(t, state.StateIdle, fx.sessions.GetState(7))
}

func TestHandleTextOutsideDialog(t *testing.T) {
	fx := newFlowFixture(t, 100)

	reply := fx.flow.HandleText(context.Background(), 7, "hello")
	assert.Equal(t, msgNothingToCancel, reply.Text)
}

func TestCountDigits(t *testing.T) {
	cases := map[string]int{
		"":                 0,
		"+7 999 123-45-67": 11,
		"abc":              0,
		"89991234567":      11,
	}
	for input, want := range cases {
		assert.Equal(t, want, countDigits(input), "input %q", input)
	}
}
