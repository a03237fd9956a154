package session

import (
	"sync"

	"log/slog"

	"candlebot/core/logger"
	tghelpers "candlebot/core/telegram/helpers"
	"candlebot/core/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// Draft holds partially collected order fields before submission.
type Draft struct {
	Name  string
	Phone string
}

// Session is the per-user transient state: browse position, cart contents,
// an optional in-progress order draft, and the dialog FSM state.
type Session struct {
	State       state.State
	BrowseIndex int
	Cart        []int64
	Draft       *Draft

	// tempData carries legacy flags during migrations; dialog entry clears
	// the stale awaiting_phone key left behind by the previous flow design.
	tempData map[string]interface{}
}

// Store owns all user sessions. Sessions are created lazily and live for the
// process lifetime; a single user's events are handled one at a time, but
// different users are served concurrently, hence the lock.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore constructs an empty in-memory session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

func (s *Store) getOrCreate(userID int64) *Session {
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &Session{State: state.StateIdle, tempData: make(map[string]interface{})}
		s.sessions[userID] = sess
	}
	return sess
}

// Count reports how many user sessions exist.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Snapshot returns a copy of the user's session for read-only inspection.
func (s *Store) Snapshot(userID int64) Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return Session{State: state.StateIdle}
	}
	out := Session{
		State:       sess.State,
		BrowseIndex: sess.BrowseIndex,
		Cart:        append([]int64(nil), sess.Cart...),
	}
	if sess.Draft != nil {
		d := *sess.Draft
		out.Draft = &d
	}
	return out
}

// BrowseIndex returns the user's current catalog cursor.
func (s *Store) BrowseIndex(userID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[userID]; ok {
		return sess.BrowseIndex
	}
	return 0
}

// SetBrowseIndex moves the user's catalog cursor.
func (s *Store) SetBrowseIndex(userID int64, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreate(userID).BrowseIndex = index
}

// Cart returns a copy of the user's cart entries (one per unit).
func (s *Store) Cart(userID int64) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[userID]; ok {
		return append([]int64(nil), sess.Cart...)
	}
	return nil
}

// AppendToCart adds one unit of the product to the user's cart.
func (s *Store) AppendToCart(userID, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.getOrCreate(userID)
	sess.Cart = append(sess.Cart, productID)
}

// ClearCart empties the cart and reports whether it held anything.
func (s *Store) ClearCart(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok || len(sess.Cart) == 0 {
		return false
	}
	sess.Cart = nil
	return true
}

// DraftOf returns a copy of the in-progress order draft, if any.
func (s *Store) DraftOf(userID int64) (Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	if !ok || sess.Draft == nil {
		return Draft{}, false
	}
	return *sess.Draft, true
}

// SetDraftName stores the customer name, creating the draft if needed.
func (s *Store) SetDraftName(userID int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.getOrCreate(userID)
	if sess.Draft == nil {
		sess.Draft = &Draft{}
	}
	sess.Draft.Name = name
}

// SetDraftPhone stores the customer phone, creating the draft if needed.
func (s *Store) SetDraftPhone(userID int64, phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.getOrCreate(userID)
	if sess.Draft == nil {
		sess.Draft = &Draft{}
	}
	sess.Draft.Phone = phone
}

// ClearDraft discards the in-progress order draft.
func (s *Store) ClearDraft(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userID]; ok {
		sess.Draft = nil
	}
}

// SetState sets the FSM state for the given user.
func (s *Store) SetState(userID int64, st state.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreate(userID).State = st
}

// GetState returns the current FSM state of a user, or idle if none exists.
func (s *Store) GetState(userID int64) state.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[userID]; ok {
		return sess.State
	}
	return state.StateIdle
}

// HasState checks if a user has an active state other than idle.
func (s *Store) HasState(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	return ok && sess.State != state.StateIdle
}

// ClearState resets the FSM state to idle without touching other session data.
func (s *Store) ClearState(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userID]; ok {
		sess.State = state.StateIdle
	}
}

// InProgress reports whether the user currently has an active FSM state.
func (s *Store) InProgress(userID int64) bool {
	return s.HasState(userID)
}

// SetTemp stores a temporary key/value pair for the given user session.
func (s *Store) SetTemp(userID int64, key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreate(userID).tempData[key] = value
}

// GetTemp retrieves a temporary value by key for the given user session.
func (s *Store) GetTemp(userID int64, key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return nil, false
	}
	val, ok := sess.tempData[key]
	return val, ok
}

// ClearTemp removes a temporary key/value pair for the given user session.
func (s *Store) ClearTemp(userID int64, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userID]; ok {
		delete(sess.tempData, key)
	}
}

// ManagerHandler executes the handler registered for the user's current state.
func (s *Store) ManagerHandler(c tele.Context) error {
	userID := c.Sender().ID
	current := s.GetState(userID)
	ctx := tghelpers.BuildContext(c)
	logger.Debug(ctx, "tg", "fsm.manager",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("state", string(current)),
	)

	if handler, ok := state.Handler(current); ok {
		return handler(c)
	}
	return nil
}

var _ state.Manager = (*Store)(nil)
