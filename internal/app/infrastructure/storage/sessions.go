package storage

import (
	"container/heap"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"github.com/opfobo/taxmate-sub000/internal/app/domain/address"
	"slices"
	"time"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNothingToUndo   = errors.New("nothing to undo")
)

// Session is one parse under review. Set is the current state; History holds
// the previous states, oldest first.
type Session struct {
	ID        string             `json:"id"`
	Text      string             `json:"text"`
	Strategy  string             `json:"strategy"`
	Set       address.FieldSet   `json:"set"`
	History   []address.FieldSet `json:"-"`
	CreatedAt time.Time          `json:"created_at"`
	ExpiresAt time.Time          `json:"expires_at"`

	exp *expiry
}

func (s *Session) snapshot() Session {
	c := *s
	c.History = slices.Clone(s.History)
	c.exp = nil
	return c
}

// Sessions keeps edit sessions in memory, sharded by id, each expiring after
// ttl without access.
type Sessions struct {
	shards     []shard
	ttl        time.Duration
	maxHistory int
	now        func() time.Time

	stop chan struct{}
	done chan struct{}
}

func NewSessions(nShards int, ttl time.Duration, maxHistory int, granularity time.Duration) *Sessions {
	if nShards <= 0 {
		nShards = 1
	}

	s := &Sessions{
		shards:     make([]shard, nShards),
		ttl:        ttl,
		maxHistory: maxHistory,
		now:        time.Now,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	for i := range s.shards {
		s.shards[i].sessions = make(map[string]*Session)
		s.shards[i].expHeap = make(expiryHeap, 0)
		heap.Init(&s.shards[i].expHeap)
	}

	go func() {
		defer close(s.done)
		if granularity <= 0 {
			<-s.stop
			return
		}

		ticker := time.NewTicker(granularity)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Cleanup()
			case <-s.stop:
				return
			}
		}
	}()
	return s
}

// Create stores a new session for a fresh parse and returns it.
func (s *Sessions) Create(text string, strategy address.Strategy, set address.FieldSet) (Session, error) {
	id, err := NewID()
	if err != nil {
		return Session{}, fmt.Errorf("generate session id: %w", err)
	}

	now := s.now()
	sess := &Session{
		ID:        id,
		Text:      text,
		Strategy:  strategy.String(),
		Set:       set,
		CreatedAt: now,
	}

	sh := s.getShard(id)
	sh.mu.Lock()
	sh.sessions[id] = sess
	sh.touch(sess, s.ttl, now)
	snap := sess.snapshot()
	sh.mu.Unlock()

	return snap, nil
}

func (s *Sessions) Get(id string) (Session, error) {
	return s.update(id, func(*Session) error { return nil })
}

// Apply runs one edit on the session's set and keeps the previous set for
// Undo. A failed edit leaves the session untouched.
func (s *Sessions) Apply(id string, e address.Edit) (Session, error) {
	return s.update(id, func(sess *Session) error {
		next, err := address.Apply(sess.Set, e)
		if err != nil {
			return err
		}

		sess.History = append(sess.History, sess.Set)
		if s.maxHistory > 0 && len(sess.History) > s.maxHistory {
			sess.History = slices.Delete(sess.History, 0, len(sess.History)-s.maxHistory)
		}
		sess.Set = next
		return nil
	})
}

// Undo restores the set that preceded the last applied edit.
func (s *Sessions) Undo(id string) (Session, error) {
	return s.update(id, func(sess *Session) error {
		n := len(sess.History)
		if n == 0 {
			return ErrNothingToUndo
		}
		sess.Set = sess.History[n-1]
		sess.History = sess.History[:n-1]
		return nil
	})
}

// Delete removes the session and returns its last state.
func (s *Sessions) Delete(id string) (Session, error) {
	sh := s.getShard(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sess, ok := sh.sessions[id]
	if !ok || !sess.ExpiresAt.After(s.now()) {
		return Session{}, ErrSessionNotFound
	}
	snap := sess.snapshot()
	sh.remove(sess)
	return snap, nil
}

func (s *Sessions) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		n += len(sh.sessions)
		sh.mu.RUnlock()
	}
	return n
}

// Cleanup evicts expired sessions from every shard.
func (s *Sessions) Cleanup() int {
	now := s.now()
	removed := 0
	for i := range s.shards {
		removed += s.shards[i].evict(now)
	}
	return removed
}

func (s *Sessions) Close() {
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
	<-s.done
}

func (s *Sessions) update(id string, fn func(sess *Session) error) (Session, error) {
	sh := s.getShard(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	now := s.now()
	sess, ok := sh.sessions[id]
	if !ok || !sess.ExpiresAt.After(now) {
		return Session{}, ErrSessionNotFound
	}

	if err := fn(sess); err != nil {
		return sess.snapshot(), err
	}
	sh.touch(sess, s.ttl, now)
	return sess.snapshot(), nil
}

// NewID returns a random URL-safe identifier.
func NewID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
