// Package session keeps per-subject attribute maps whose lifecycle is
// independent of authentication.
package session

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/axent-pl/security/common"
	"github.com/axent-pl/security/common/logx"
	"github.com/google/uuid"
)

var ErrAttributeType = errors.New("session attribute has unexpected type")

type ID string

type record struct {
	owner      string
	attributes map[string]any
	lastAccess time.Time
}

// Manager owns every live session. It is safe for concurrent use and all
// handle operations are serialized through its lock.
type Manager struct {
	mu       sync.Mutex
	sessions map[ID]*record
	byOwner  map[string]ID
	timeout  time.Duration
	now      func() time.Time

	ticker *time.Ticker
	done   chan struct{}
}

type Option func(*Manager)

// WithTimeout expires sessions idle for longer than d. Zero disables expiry.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[ID]*record),
		byOwner:  make(map[string]ID),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetOrCreate returns the live session of owner, creating one if needed.
// Repeated calls return handles onto the same session until it is
// invalidated or expires.
func (m *Manager) GetOrCreate(owner string) *Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if id, ok := m.byOwner[owner]; ok {
		if rec, live := m.liveLocked(id, now); live {
			rec.lastAccess = now
			return &Handle{id: id, m: m}
		}
	}

	id := ID(uuid.NewString())
	m.sessions[id] = &record{
		owner:      owner,
		attributes: make(map[string]any),
		lastAccess: now,
	}
	m.byOwner[owner] = id
	logx.L().Debug("session created", "session", id, "owner", owner)
	return &Handle{id: id, m: m}
}

// Lookup returns a handle onto an existing live session.
func (m *Manager) Lookup(id ID) (*Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.liveLocked(id, m.now())
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrSessionExpired, id)
	}
	rec.lastAccess = m.now()
	return &Handle{id: id, m: m}, nil
}

// Len reports the number of stored sessions, including expired ones not yet swept.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep deletes every expired session and returns how many were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, rec := range m.sessions {
		if m.expiredLocked(rec, now) {
			m.deleteLocked(id)
			removed++
		}
	}
	if removed > 0 {
		logx.L().Debug("expired sessions swept", "count", removed)
	}
	return removed
}

// StartSweeper runs Sweep every interval until Stop is called.
func (m *Manager) StartSweeper(interval time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ticker != nil || interval <= 0 {
		return
	}
	m.ticker = time.NewTicker(interval)
	m.done = make(chan struct{})
	go m.sweepLoop(m.ticker, m.done)
}

func (m *Manager) sweepLoop(ticker *time.Ticker, done chan struct{}) {
	for {
		select {
		case <-ticker.C:
			m.Sweep()
		case <-done:
			ticker.Stop()
			return
		}
	}
}

// Stop stops the background sweeper. It is safe to call more than once.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done == nil {
		return
	}
	close(m.done)
	m.done = nil
	m.ticker = nil
}

func (m *Manager) expiredLocked(rec *record, now time.Time) bool {
	return m.timeout > 0 && now.Sub(rec.lastAccess) > m.timeout
}

func (m *Manager) liveLocked(id ID, now time.Time) (*record, bool) {
	rec, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	if m.expiredLocked(rec, now) {
		m.deleteLocked(id)
		return nil, false
	}
	return rec, true
}

func (m *Manager) deleteLocked(id ID) {
	rec, ok := m.sessions[id]
	if !ok {
		return
	}
	if m.byOwner[rec.owner] == id {
		delete(m.byOwner, rec.owner)
	}
	delete(m.sessions, id)
}

// with runs fn on the live record of id under the manager lock.
func (m *Manager) with(id ID, fn func(rec *record) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	rec, ok := m.liveLocked(id, now)
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrSessionExpired, id)
	}
	rec.lastAccess = now
	return fn(rec)
}

func (m *Manager) invalidate(id ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; ok {
		logx.L().Debug("session invalidated", "session", id)
	}
	m.deleteLocked(id)
}

func (m *Manager) keys(id ID) ([]string, error) {
	var out []string
	err := m.with(id, func(rec *record) error {
		out = slices.Sorted(maps.Keys(rec.attributes))
		return nil
	})
	return out, err
}
