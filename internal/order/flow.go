package order

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"log/slog"

	"candlebot/core/logger"
	"candlebot/core/telegram/format"
	"candlebot/core/telegram/state"
	"candlebot/internal/cart"
	"candlebot/internal/session"
)

// Dialog states. Entry is always StateName; StatePhone is reachable only from
// StateName, which guarantees the phone step runs exactly once per order.
const (
	StateName  state.State = "order_name"
	StatePhone state.State = "order_phone"
)

// legacyAwaitingPhoneKey is the ad hoc flag the pre-FSM flow used to track the
// phone step. It is cleared on every dialog entry so a stale flag can never
// resurrect the old double-prompt behavior.
const legacyAwaitingPhoneKey = "awaiting_phone"

const (
	msgCartEmpty = "🛒 Your cart is empty!"
	msgNameShort = "❌ That name is too short. Please enter your real name:"
	msgPhoneBad  = "❌ That phone number is too short. Please enter a valid number:\n\n" +
		"<i>Example: +7 999 123-45-67 or 89991234567</i>"
	msgTextOnly = "❌ Please send a text message.\n" +
		"Use /cancel to abort the order."
	msgCancelled = "❌ Order cancelled.\n\n" +
		"You can start again from /cart"
	msgNothingToCancel = "Nothing to cancel. Use /cart to start an order."
)

// Reply is an outbound effect produced by the dialog: the decision logic stays
// free of transport concerns and independently testable.
type Reply struct {
	Text string
	// EditMessage asks the renderer to edit the triggering message instead
	// of sending a new one (used for callback-initiated steps).
	EditMessage bool
}

// Flow is the order dialog state machine.
type Flow struct {
	sessions   *session.Store
	cart       *cart.Engine
	dispatcher *Dispatcher
}

// NewFlow wires the dialog to its session store, cart engine, and dispatcher.
func NewFlow(sessions *session.Store, engine *cart.Engine, dispatcher *Dispatcher) *Flow {
	return &Flow{sessions: sessions, cart: engine, dispatcher: dispatcher}
}

// Start handles the start_order trigger. With an empty cart it stays idle and
// reports so; otherwise it resets any previous draft, clears the legacy
// awaiting-phone flag, shows the order summary, and asks for a name.
func (f *Flow) Start(ctx context.Context, userID int64) Reply {
	sum := f.cart.Summarize(userID)
	if sum.ItemCount == 0 {
		return Reply{Text: msgCartEmpty, EditMessage: true}
	}

	f.sessions.ClearDraft(userID)
	f.sessions.ClearTemp(userID, legacyAwaitingPhoneKey)
	f.sessions.SetState(userID, StateName)

	logger.Info(ctx, "service.orders", "dialog.start",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.Int("cart_items", sum.ItemCount),
		slog.Int64("order_total", sum.Total),
	)

	var b strings.Builder
	b.WriteString("📝 " + format.Bold("Checkout") + "\n\n")
	b.WriteString(format.Bold("Your order:") + "\n")
	for _, line := range sum.Lines {
		b.WriteString("• " + format.EscapeHTML(line.Product.Name))
		b.WriteString(" x")
		b.WriteString(strconv.Itoa(line.Quantity))
		b.WriteString("\n")
	}
	b.WriteString("\n" + format.Bold("Total due:") + " " + format.Price(sum.Total) + "\n\n")
	b.WriteString("Please enter your name:")
	return Reply{Text: b.String(), EditMessage: true}
}

// HandleText advances the dialog with the user's text input.
func (f *Flow) HandleText(ctx context.Context, userID int64, text string) Reply {
	switch f.sessions.GetState(userID) {
	case StateName:
		return f.handleName(ctx, userID, text)
	case StatePhone:
		return f.handlePhone(ctx, userID, text)
	default:
		// Not in a dialog; the router should not have sent us here.
		return Reply{Text: msgNothingToCancel}
	}
}

func (f *Flow) handleName(ctx context.Context, userID int64, text string) Reply {
	name := strings.TrimSpace(text)
	if len([]rune(name)) < 2 {
		logger.Debug(ctx, "service.orders", "dialog.name.rejected",
			slog.Int64("user_id", userID),
		)
		return Reply{Text: msgNameShort}
	}

	f.sessions.SetDraftName(userID, name)
	f.sessions.SetState(userID, StatePhone)
	return Reply{Text: "Great, " + format.EscapeHTML(name) + "! Now enter your phone number:\n\n" +
		"<i>Example: +7 999 123-45-67 or 89991234567</i>"}
}

func (f *Flow) handlePhone(ctx context.Context, userID int64, text string) Reply {
	phone := strings.TrimSpace(text)
	if countDigits(phone) < 10 {
		logger.Debug(ctx, "service.orders", "dialog.phone.rejected",
			slog.Int64("user_id", userID),
		)
		return Reply{Text: msgPhoneBad}
	}

	f.sessions.SetDraftPhone(userID, phone)
	// The dialog exits regardless of dispatch outcome; a failed delivery
	// keeps cart and draft so the user can retry from /cart.
	f.sessions.ClearState(userID)
	result := f.dispatcher.Submit(ctx, userID)
	return Reply{Text: result.CustomerText()}
}

// RejectNonText is emitted when a photo or document arrives mid-dialog.
// State is left unchanged.
func (f *Flow) RejectNonText(userID int64) Reply {
	return Reply{Text: msgTextOnly}
}

// Cancel aborts an in-progress dialog: the draft is discarded, the cart is
// deliberately left untouched.
func (f *Flow) Cancel(ctx context.Context, userID int64) Reply {
	if !f.sessions.InProgress(userID) {
		return Reply{Text: msgNothingToCancel}
	}
	f.sessions.ClearDraft(userID)
	f.sessions.ClearTemp(userID, legacyAwaitingPhoneKey)
	f.sessions.ClearState(userID)
	logger.Info(ctx, "service.orders", "dialog.cancel",
		slog.String("status", "cancelled"),
		slog.Int64("user_id", userID),
	)
	return Reply{Text: msgCancelled}
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

