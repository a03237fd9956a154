package bot

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"candlebot/core/buildinfo"
	"candlebot/core/telegram/format"
	tghelpers "candlebot/core/telegram/helpers"
	"candlebot/internal/catalog"

	tele "gopkg.in/telebot.v4"
)

func (a *App) handleStart(c tele.Context) error {
	name := "friend"
	if s := c.Sender(); s != nil && s.FirstName != "" {
		name = s.FirstName
	}
	return tghelpers.SendHTML(c, fmt.Sprintf(msgWelcome, format.EscapeHTML(name)))
}

func (a *App) handleHelp(c tele.Context) error {
	return tghelpers.SendHTML(c, msgHelp)
}

// handleCatalog resets browsing to the first product and shows its card.
func (a *App) handleCatalog(c tele.Context) error {
	if a.catalog.Count() == 0 {
		return tghelpers.SendHTML(c, msgCatalogEmpty)
	}
	a.sessions.SetBrowseIndex(c.Sender().ID, 0)

	p, err := a.catalog.Get(0)
	if err != nil {
		return tghelpers.SendHTML(c, msgCatalogEmpty)
	}
	return a.renderer.sendProductCard(c, p, 0, a.catalog.Count(), a.renderer.productKeyboard(p))
}

// handleCart shows the cart summary with clear/order actions, or a hint when
// the cart is empty.
func (a *App) handleCart(c tele.Context) error {
	sum := a.cart.Summarize(c.Sender().ID)
	if sum.ItemCount == 0 {
		return tghelpers.SendHTML(c, msgCartEmptyHint)
	}
	return tghelpers.SendHTML(c, a.renderer.cartView(sum), a.renderer.cartKeyboard())
}

// handleItem jumps straight to a product by its numeric code.
func (a *App) handleItem(c tele.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return tghelpers.SendHTML(c, msgItemUsage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return tghelpers.SendHTML(c, msgItemBadID)
	}

	p, err := a.catalog.FindByID(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return tghelpers.SendHTML(c, fmt.Sprintf(msgItemNotFound, id))
		}
		return tghelpers.SendHTML(c, msgFault)
	}

	index := a.indexOf(p.ID)
	a.sessions.SetBrowseIndex(c.Sender().ID, index)
	return a.renderer.sendProductCard(c, p, index, a.catalog.Count(), a.renderer.productKeyboard(p))
}

// indexOf resolves a product's position in catalog order.
func (a *App) indexOf(productID int64) int {
	for i := 0; i < a.catalog.Count(); i++ {
		if p, err := a.catalog.Get(i); err == nil && p.ID == productID {
			return i
		}
	}
	return 0
}

func (a *App) handleCancel(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	reply := a.flow.Cancel(ctx, c.Sender().ID)
	return tghelpers.SendHTML(c, reply.Text)
}

// handleStats is a hidden admin command reporting runtime diagnostics.
func (a *App) handleStats(c tele.Context) error {
	uptime := time.Since(a.startedAt).Round(time.Second)
	lines := []string{
		format.Bold("Bot status"),
		"",
		"Version: " + format.EscapeHTML(buildinfo.Version) + " (" + format.EscapeHTML(buildinfo.Commit) + ")",
		"Uptime: " + uptime.String(),
		"Products: " + strconv.Itoa(a.catalog.Count()),
		"Sessions: " + strconv.Itoa(a.sessions.Count()),
	}
	if a.sender != nil {
		lines = append(lines, "Send errors: "+strconv.FormatUint(a.sender.ErrorCount(), 10))
	}
	return tghelpers.SendHTML(c, format.Lines(lines...))
}

// handleDialogText feeds free-form text into the order dialog. It is
// registered as the handler for every dialog state.
func (a *App) handleDialogText(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	reply := a.flow.HandleText(ctx, c.Sender().ID, c.Text())
	if reply.Text == "" {
		return nil
	}
	return tghelpers.SendHTML(c, reply.Text)
}

// handleDialogMedia rejects photos and documents sent mid-dialog.
func (a *App) handleDialogMedia(c tele.Context) error {
	reply := a.flow.RejectNonText(c.Sender().ID)
	return tghelpers.SendHTML(c, reply.Text)
}

func (a *App) handleUnknownText(c tele.Context) error {
	return tghelpers.SendHTML(c, msgTextHint)
}
