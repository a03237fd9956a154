// Package state provides a lightweight FSM registry for Telegram bots.
// Handlers are registered per state; the session storage behind the Manager
// interface is supplied by the application.
package state
