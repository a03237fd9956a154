package order

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"log/slog"

	"candlebot/core/logger"
	"candlebot/core/telegram/format"
	"candlebot/internal/cart"
	"candlebot/internal/session"
)

// Result reports how a submission ended.
type Result int

const (
	// Submitted means the administrator was notified and the cart was cleared.
	Submitted Result = iota
	// DeliveryFailed means the admin notification failed; cart and draft are
	// preserved so the user can retry. The order is not considered placed.
	DeliveryFailed
	// SubmittedNoAdmin means no administrative channel is configured; the
	// order completed in degraded mode and the cart was cleared.
	SubmittedNoAdmin
)

const (
	msgOrderAccepted = "✅ Thank you for your order! We will contact you soon.\n\n" +
		"🕯️ Enjoy your candles!"
	msgOrderFailed = "❌ Something went wrong while processing your order. " +
		"Please try again later or contact us directly."
)

// CustomerText is the user-facing confirmation for the result.
func (r Result) CustomerText() string {
	if r == DeliveryFailed {
		return msgOrderFailed
	}
	return msgOrderAccepted
}

// Placed reports whether the order reached a terminal accepted state.
func (r Result) Placed() bool {
	return r != DeliveryFailed
}

// Notifier delivers a text notification to a chat. Implemented over the
// Telegram bot in production and faked in tests.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}

// Dispatcher formats finalized orders and relays them to the administrator.
type Dispatcher struct {
	sessions    *session.Store
	cart        *cart.Engine
	notifier    Notifier
	adminChatID int64

	// newRef is swappable for deterministic tests.
	newRef func() string
}

// NewDispatcher builds a dispatcher. A zero adminChatID selects the degraded
// no-admin mode; the caller is expected to have warned about it at startup.
func NewDispatcher(sessions *session.Store, engine *cart.Engine, notifier Notifier, adminChatID int64) *Dispatcher {
	return &Dispatcher{
		sessions:    sessions,
		cart:        engine,
		notifier:    notifier,
		adminChatID: adminChatID,
		newRef:      newOrderRef,
	}
}

// Submit aggregates the user's cart and draft into an order, relays it to the
// administrative channel, and resets the session on success. On delivery
// failure the cart and draft are kept: they are the only record of the order.
func (d *Dispatcher) Submit(ctx context.Context, userID int64) Result {
	sum := d.cart.Summarize(userID)
	draft, _ := d.sessions.DraftOf(userID)
	ref := d.newRef()

	if d.adminChatID == 0 {
		logger.Warn(ctx, "service.orders", "order.dispatch",
			slog.String("status", "skip"),
			slog.Int64("user_id", userID),
			slog.String("order_ref", ref),
			slog.Int64("order_total", sum.Total),
		)
		d.reset(userID)
		return SubmittedNoAdmin
	}

	text := adminMessage(ref, draft, sum)
	if err := d.notifier.Notify(ctx, d.adminChatID, text); err != nil {
		logger.Error(ctx, "service.orders", "order.dispatch",
			slog.String("status", "fail"),
			slog.Int64("user_id", userID),
			slog.String("order_ref", ref),
			slog.Int64("order_total", sum.Total),
			slog.String("err", err.Error()),
		)
		return DeliveryFailed
	}

	logger.Info(ctx, "service.orders", "order.dispatch",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("order_ref", ref),
		slog.Int("cart_items", sum.ItemCount),
		slog.Int64("order_total", sum.Total),
	)
	d.reset(userID)
	return Submitted
}

func (d *Dispatcher) reset(userID int64) {
	d.sessions.ClearCart(userID)
	d.sessions.ClearDraft(userID)
}

func adminMessage(ref string, draft session.Draft, sum cart.Summary) string {
	name := draft.Name
	if name == "" {
		name = "not provided"
	}
	phone := draft.Phone
	if phone == "" {
		phone = "not provided"
	}

	var b strings.Builder
	b.WriteString("🔔 NEW ORDER 🔔\n\n")
	b.WriteString("Ref: #" + ref + "\n")
	b.WriteString("👤 Customer: " + name + "\n")
	b.WriteString("📞 Phone: " + phone + "\n\n")
	b.WriteString("---\n\n")
	b.WriteString("🛒 Items:\n")
	for _, line := range sum.Lines {
		b.WriteString("- " + line.Product.Name + " (" + strconv.Itoa(line.Quantity) + " pc.)\n")
	}
	b.WriteString("\n---\n\n")
	b.WriteString("💰 Total: " + format.Price(sum.Total))
	return b.String()
}

// newOrderRef derives a short human-quotable reference from a UUID.
func newOrderRef() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
