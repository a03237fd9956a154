package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candlebot/internal/cart"
	"candlebot/internal/catalog"
)

func TestProductCaption(t *testing.T) {
	r := &renderer{}
	p := catalog.Product{
		ID:          2,
		Name:        "Vanilla Evening",
		Description: "Warm vanilla & tonka bean",
		Price:       150,
	}

	caption := r.productCaption(p, 1, 4)
	assert.Contains(t, caption, "<b>Vanilla Evening</b>")
	assert.Contains(t, caption, "Warm vanilla &amp; tonka bean")
	assert.Contains(t, caption, "150 rub.")
	assert.Contains(t, caption, "Item 2 of 4")
	assert.Contains(t, caption, "Code:</b> 2")
}

func TestProductCaptionEscapesMarkup(t *testing.T) {
	r := &renderer{}
	p := catalog.Product{ID: 1, Name: "<script>", Description: "a<b>c", Price: 10}

	caption := r.productCaption(p, 0, 1)
	assert.NotContains(t, caption, "<script>")
	assert.Contains(t, caption, "&lt;script&gt;")
	assert.Contains(t, caption, "a&lt;b&gt;c")
}

func TestProductKeyboardLayout(t *testing.T) {
	r := &renderer{}
	markup := r.productKeyboard(catalog.Product{ID: 5, Name: "Cedar & Amber"})

	require.Len(t, markup.InlineKeyboard, 1)
	row := markup.InlineKeyboard[0]
	require.Len(t, row, 3)
	assert.Equal(t, cbPrev, row[0].Unique)
	assert.Equal(t, cbAddToCart, row[1].Unique)
	assert.Equal(t, "5", row[1].Data)
	assert.Equal(t, cbNext, row[2].Unique)
}

func TestCartKeyboardLayout(t *testing.T) {
	r := &renderer{}
	markup := r.cartKeyboard()

	require.Len(t, markup.InlineKeyboard, 1)
	row := markup.InlineKeyboard[0]
	require.Len(t, row, 2)
	assert.Equal(t, cbClearCart, row[0].Unique)
	assert.Equal(t, cbStartOrder, row[1].Unique)
}

func TestCartView(t *testing.T) {
	r := &renderer{}
	view := r.cartView(cart.Summary{
		Lines: []cart.Line{
			{Product: catalog.Product{ID: 1, Name: "Lavender Dream", Price: 300}, Quantity: 2, Total: 600},
			{Product: catalog.Product{ID: 2, Name: "Vanilla Evening", Price: 150}, Quantity: 1, Total: 150},
		},
		Total:     750,
		ItemCount: 3,
	})

	assert.Contains(t, view, "Lavender Dream x2 - 600 rub.")
	assert.Contains(t, view, "Vanilla Evening x1 - 150 rub.")
	assert.Contains(t, view, "<b>Total:</b> 750 rub.")
	assert.Contains(t, view, "Items in cart: 3")
}
