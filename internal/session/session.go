package session

import (
	"sync"
	"time"
)

// Kind identifies which entry a dialog is collecting.
type Kind int

const (
	KindMeal Kind = iota
	KindWorkout
	KindWeight
)

func (k Kind) String() string {
	switch k {
	case KindMeal:
		return "meal"
	case KindWorkout:
		return "workout"
	case KindWeight:
		return "weight"
	}
	return "unknown"
}

// State is the current step of an open dialog.
type State int

const (
	AwaitingMealName State = iota
	AwaitingMealCalories
	AwaitingMealProtein
	AwaitingWorkoutType
	AwaitingWorkoutDuration
	AwaitingWeightValue
)

// Draft holds the fields collected so far. Only the fields relevant to the
// session's kind are ever set.
type Draft struct {
	MealName     string
	MealCalories int
	WorkoutType  string
}

// Session is the ephemeral per-user record of an in-progress dialog. It is
// never persisted; it lives only while the dialog is open.
type Session struct {
	ChatID     int64
	Kind       Kind
	State      State
	Draft      Draft
	StartedAt  time.Time
	LastActive time.Time
}

// Manager owns all open sessions, one per user. Safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	now      func() time.Time
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Session), now: time.Now}
}

// Begin opens a new dialog for the user, replacing any existing one. The
// previous draft never bleeds into the new session.
func (m *Manager) Begin(userID, chatID int64, kind Kind, initial State) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	s := &Session{ChatID: chatID, Kind: kind, State: initial, StartedAt: now, LastActive: now}
	m.sessions[userID] = s
	return s
}

func (m *Manager) Get(userID int64) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[userID]
	return s, ok
}

// Touch refreshes the session's idle clock.
func (m *Manager) Touch(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		s.LastActive = m.now()
	}
}

// End destroys the user's session, if any.
func (m *Manager) End(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Expired identifies a session removed by SweepIdle.
type Expired struct {
	UserID int64
	ChatID int64
}

// SweepIdle removes sessions that have been inactive longer than maxIdle
// and returns the affected users so callers can notify them.
func (m *Manager) SweepIdle(maxIdle time.Duration) []Expired {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-maxIdle)
	var expired []Expired
	for id, s := range m.sessions {
		if s.LastActive.Before(cutoff) {
			delete(m.sessions, id)
			expired = append(expired, Expired{UserID: id, ChatID: s.ChatID})
		}
	}
	return expired
}
