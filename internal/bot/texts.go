package bot

// Callback uniques.
const (
	cbPrev       = "prev"
	cbNext       = "next"
	cbAddToCart  = "add_to_cart"
	cbClearCart  = "clear_cart"
	cbStartOrder = "start_order"
)

const (
	msgWelcome = "🕯️ Welcome to our handmade candle shop, %s!\n\n" +
		"You will find unique hand-poured candles with natural scents here.\n\n" +
		"📋 Browse the catalog with /catalog\n" +
		"🛒 View your cart with /cart\n" +
		"❓ Help: /help"

	msgHelp = "🛍️ <b>Available commands:</b>\n\n" +
		"/start - Start working with the bot\n" +
		"/catalog - Show the product catalog\n" +
		"/cart - View your cart\n" +
		"/help - This help\n\n" +
		"💡 <b>How to place an order:</b>\n" +
		"1. Browse the catalog (/catalog)\n" +
		"2. Add items with the 'Add to cart 🛒' button\n" +
		"3. View your cart (/cart)\n" +
		"4. Press 'Place order 📝'\n" +
		"5. Enter your name and phone (once)\n\n" +
		"🔄 During checkout you can abort with /cancel"

	msgCatalogEmpty = "The catalog is empty."

	msgCartEmptyHint = "🛒 Your cart is empty!\n\n" +
		"Add items from /catalog"

	msgCartCleared = "🛒 Your cart has been cleared!\n\n" +
		"Add items from /catalog"

	msgCartAlreadyEmpty = "Cart is already empty!"

	msgItemUsage = "Please provide a product code after the command.\n" +
		"Example: /item 1"

	msgItemBadID = "⚠️ Please enter a valid product code."

	msgItemNotFound = "⚠️ No product with code %d."

	msgTextHint = "To place an order use /cart and press 'Place order 📝'"

	msgFault = "⚠️ Something went wrong. Please try again later or contact the administrator."

	noticePhotoUnavailable = "⚠️ Photo temporarily unavailable"
	noticePhotoFailed      = "⚠️ Photo failed to load"
)
