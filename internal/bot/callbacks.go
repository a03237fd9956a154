package bot

import (
	"errors"
	"fmt"

	"candlebot/core/telegram/callbacks"
	tghelpers "candlebot/core/telegram/helpers"
	"candlebot/internal/cart"

	tele "gopkg.in/telebot.v4"
)

// cbNavigate moves the browse cursor and redraws the product card in place.
func (a *App) cbNavigate(dir cart.Direction) tele.HandlerFunc {
	return func(c tele.Context) error {
		index, err := a.cart.Advance(c.Sender().ID, dir)
		if err != nil {
			_ = c.Respond(&tele.CallbackResponse{Text: msgCatalogEmpty})
			return nil
		}
		p, err := a.catalog.Get(index)
		if err != nil {
			_ = c.Respond(&tele.CallbackResponse{Text: msgCatalogEmpty})
			return nil
		}
		_ = c.Respond()
		return a.renderer.editProductCard(c, p, index, a.catalog.Count(), a.renderer.productKeyboard(p))
	}
}

// cbAdd puts the product identified by the callback payload into the cart and
// confirms with a toast. When the payload is missing or malformed it falls
// back to the product currently under the browse cursor.
func (a *App) cbAdd(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	productID, err := callbacks.PayloadInt64(c)
	if err != nil {
		p, _, curErr := a.cart.Current(userID)
		if curErr != nil {
			_ = c.Respond(&tele.CallbackResponse{Text: msgCatalogEmpty})
			return nil
		}
		productID = p.ID
	}

	p, err := a.cart.Add(ctx, userID, productID)
	if err != nil {
		_ = c.Respond(&tele.CallbackResponse{Text: msgFault, ShowAlert: true})
		return nil
	}
	return c.Respond(&tele.CallbackResponse{
		Text: fmt.Sprintf("✅ %s added to cart!", p.Name),
	})
}

// cbClear empties the cart. Pressing the button twice only yields the
// "already empty" toast, the message is not edited again.
func (a *App) cbClear(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	if err := a.cart.Clear(ctx, c.Sender().ID); err != nil {
		if errors.Is(err, cart.ErrAlreadyEmpty) {
			_ = c.Respond(&tele.CallbackResponse{Text: msgCartAlreadyEmpty})
			return nil
		}
		_ = c.Respond(&tele.CallbackResponse{Text: msgFault, ShowAlert: true})
		return nil
	}
	_ = c.Respond()
	return tghelpers.EditOrSendHTML(c, msgCartCleared)
}

// cbOrder enters the checkout dialog from the cart view.
func (a *App) cbOrder(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	_ = c.Respond()

	reply := a.flow.Start(ctx, c.Sender().ID)
	if reply.EditMessage {
		return tghelpers.EditOrSendHTML(c, reply.Text)
	}
	return tghelpers.SendHTML(c, reply.Text)
}
