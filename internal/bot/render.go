package bot

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"log/slog"

	"candlebot/core/logger"
	"candlebot/core/telegram/format"
	tghelpers "candlebot/core/telegram/helpers"
	"candlebot/core/telegram/keyboard"
	"candlebot/internal/cart"
	"candlebot/internal/catalog"

	tele "gopkg.in/telebot.v4"
)

// renderer turns domain values into Telegram messages, degrading gracefully
// when product photos cannot be loaded.
type renderer struct {
	photoDir string
}

func (r *renderer) productCaption(p catalog.Product, index, total int) string {
	return format.Lines(
		format.Bold(p.Name),
		"",
		format.Italic(p.Description),
		"",
		"💰 "+format.Bold("Price:")+" "+format.Price(p.Price),
		"🆔 "+format.Bold("Code:")+" "+strconv.FormatInt(p.ID, 10),
		"📦 Item "+strconv.Itoa(index+1)+" of "+strconv.Itoa(total),
	)
}

func (r *renderer) productKeyboard(p catalog.Product) *tele.ReplyMarkup {
	payload := strconv.FormatInt(p.ID, 10)
	return keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: "⬅️", Unique: cbPrev},
		{Text: "Add to cart 🛒", Unique: cbAddToCart, Data: payload},
		{Text: "➡️", Unique: cbNext},
	})
}

func (r *renderer) cartKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: "🗑️ Clear cart", Unique: cbClearCart},
		{Text: "Place order 📝", Unique: cbStartOrder},
	})
}

func (r *renderer) cartView(sum cart.Summary) string {
	lines := make([]string, 0, len(sum.Lines)+6)
	lines = append(lines,
		"🛒 "+format.Bold("Your cart"),
		"",
		format.Bold("Items:"),
	)
	for _, line := range sum.Lines {
		lines = append(lines, "• "+format.EscapeHTML(line.Product.Name)+
			" x"+strconv.Itoa(line.Quantity)+" - "+format.Price(line.Total))
	}
	lines = append(lines,
		"",
		format.Bold("Total:")+" "+format.Price(sum.Total),
		"",
		"Items in cart: "+strconv.Itoa(sum.ItemCount),
	)
	return format.Lines(lines...)
}

// photoFor resolves the product photo on disk. The boolean is false when the
// photo reference is empty or the file is missing.
func (r *renderer) photoFor(ctx context.Context, p catalog.Product) (*tele.Photo, bool) {
	if p.Photo == "" {
		return nil, false
	}
	path := p.Photo
	if !filepath.IsAbs(path) && r.photoDir != "" {
		path = filepath.Join(r.photoDir, path)
	}
	if _, err := os.Stat(path); err != nil {
		logger.Warn(ctx, "service.catalog", "photo.missing",
			slog.Int64("product_id", p.ID),
			slog.String("path", path),
		)
		return nil, false
	}
	return &tele.Photo{File: tele.FromDisk(path)}, true
}

// sendProductCard sends a product as a photo with caption, falling back to a
// text message with a notice when the photo is unavailable or the send fails.
func (r *renderer) sendProductCard(c tele.Context, p catalog.Product, index, total int, markup *tele.ReplyMarkup) error {
	ctx := tghelpers.BuildContext(c)
	caption := r.productCaption(p, index, total)

	photo, ok := r.photoFor(ctx, p)
	if !ok {
		return tghelpers.SendHTML(c, caption+"\n\n"+noticePhotoUnavailable, markup)
	}
	if err := tghelpers.SendPhotoHTML(c, photo, caption, markup); err != nil {
		logger.Warn(ctx, "service.catalog", "photo.send_failed",
			slog.Int64("product_id", p.ID),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendHTML(c, caption+"\n\n"+noticePhotoFailed, markup)
	}
	return nil
}

// editProductCard replaces the current message with another product card,
// degrading to caption- or text-only edits when media cannot be used.
func (r *renderer) editProductCard(c tele.Context, p catalog.Product, index, total int, markup *tele.ReplyMarkup) error {
	ctx := tghelpers.BuildContext(c)
	caption := r.productCaption(p, index, total)

	photo, ok := r.photoFor(ctx, p)
	if ok {
		if err := tghelpers.EditMediaHTML(c, photo, caption, markup); err == nil {
			return nil
		} else {
			logger.Warn(ctx, "service.catalog", "photo.edit_failed",
				slog.Int64("product_id", p.ID),
				slog.String("err", err.Error()),
			)
		}
		caption += "\n\n" + noticePhotoFailed
	} else {
		caption += "\n\n" + noticePhotoUnavailable
	}

	if err := tghelpers.EditCaptionHTML(c, caption, markup); err == nil {
		return nil
	}
	// The original message may have been plain text (no caption to edit).
	return tghelpers.EditHTML(c, caption, markup)
}
