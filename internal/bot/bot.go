package bot

import (
	"context"
	"time"

	"log/slog"

	"candlebot/core/logger"
	coretelegram "candlebot/core/telegram"
	"candlebot/core/telegram/commands"
	"candlebot/core/telegram/router"
	tgsender "candlebot/core/telegram/sender"
	"candlebot/core/telegram/state"
	"candlebot/internal/cart"
	"candlebot/internal/catalog"
	"candlebot/internal/config"
	"candlebot/internal/order"
	"candlebot/internal/session"
)

// App wires the storefront services to the Telegram runtime.
type App struct {
	cfg      *config.Config
	sessions *session.Store
	catalog  catalog.Store
	cart     *cart.Engine
	flow     *order.Flow
	renderer *renderer
	notifier *TelegramNotifier

	// sender is bound in onStart, before any update is handled.
	sender *tgsender.Dispatcher

	startedAt time.Time
}

// NewApp assembles the application services on top of the loaded catalog.
func NewApp(cfg *config.Config, store catalog.Store) *App {
	sessions := session.NewStore()
	engine := cart.NewEngine(sessions, store)
	notifier := &TelegramNotifier{}
	dispatcher := order.NewDispatcher(sessions, engine, notifier, cfg.Core.Telegram.OrdersChatID)
	flow := order.NewFlow(sessions, engine, dispatcher)

	return &App{
		cfg:       cfg,
		sessions:  sessions,
		catalog:   store,
		cart:      engine,
		flow:      flow,
		renderer:  &renderer{photoDir: cfg.Catalog.PhotoDir},
		notifier:  notifier,
		startedAt: time.Now(),
	}
}

// TelegramRunOptions builds the registry, routes, and lifecycle hooks for the
// shared Telegram runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Start working with the bot",
	})
	reg.RegisterCommand("/catalog", commands.Command{
		Handler:     a.handleCatalog,
		Description: "Show the product catalog",
	})
	reg.RegisterCommand("/cart", commands.Command{
		Handler:     a.handleCart,
		Description: "View your cart",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     a.handleHelp,
		Description: "How to use the shop",
	})
	reg.RegisterCommand("/item", commands.Command{
		Handler:     a.handleItem,
		Description: "Open a product by its code",
		Hidden:      true,
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     a.handleCancel,
		Description: "Abort the current order",
		Hidden:      true,
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     a.handleStats,
		Description: "Runtime diagnostics",
		AdminOnly:   true,
		Hidden:      true,
	})

	_ = reg.RegisterCallback(cbPrev, a.cbNavigate(cart.Prev))
	_ = reg.RegisterCallback(cbNext, a.cbNavigate(cart.Next))
	_ = reg.RegisterCallback(cbAddToCart, a.cbAdd)
	_ = reg.RegisterCallback(cbClearCart, a.cbClear)
	_ = reg.RegisterCallback(cbStartOrder, a.cbOrder)

	reg.SetTextFallback(a.handleUnknownText)

	// Both dialog steps share one text handler; the flow switches on the
	// stored state itself.
	state.RegisterHandler(order.StateName, a.handleDialogText)
	state.RegisterHandler(order.StatePhone, a.handleDialogText)

	coreCfg := a.cfg.CoreConfig()

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: coreCfg.Telegram.AdminID,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(a.sessions, reg, router.TextOptions{
		DialogMedia:  a.handleDialogMedia,
		UnknownMedia: a.handleUnknownText,
	})...)

	return coretelegram.RunOptions{
		Config:      coreCfg,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(coreCfg, nil),
		Routes:      routes,
		OnStart:     a.onStart,
	}, nil
}

func (a *App) onStart(ctx context.Context, rt coretelegram.Runtime) error {
	a.notifier.Bind(rt.Bot)
	a.sender = rt.Dispatcher

	if a.cfg.Core.Telegram.OrdersChatID == 0 {
		logger.Warn(ctx, "service.orders", "orders.chat_unconfigured",
			slog.String("effect", "orders accepted without notification"),
		)
	}
	logger.Info(ctx, "tg", "storefront.ready",
		slog.Int("products", a.catalog.Count()),
	)
	return nil
}
