package state

import tele "gopkg.in/telebot.v4"

// State identifies a finite-state-machine step used in conversations.
type State string

const (
	// StateIdle indicates there is no active conversation with the user.
	StateIdle State = "idle"
)

// Manager orchestrates user sessions and FSM state transitions.
// Implementations own the per-user session storage; the bot framework only
// needs state routing plus a small temp-data surface for migration safeguards.
type Manager interface {
	SetState(userID int64, st State)
	GetState(userID int64) State
	HasState(userID int64) bool
	ClearState(userID int64)

	SetTemp(userID int64, key string, value interface{})
	GetTemp(userID int64, key string) (interface{}, bool)
	ClearTemp(userID int64, key string)

	InProgress(userID int64) bool
	ManagerHandler(c tele.Context) error
}
