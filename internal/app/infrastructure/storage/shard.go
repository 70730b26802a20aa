package storage

import (
	"container/heap"
	"github.com/cespare/xxhash/v2"
	"sync"
	"time"
)

type shard struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	expHeap  expiryHeap
}

func (s *Sessions) getShard(id string) *shard {
	return &s.shards[xxhash.Sum64String(id)%uint64(len(s.shards))]
}

// touch moves the deadline of sess. Every session owns one heap entry.
// Callers hold sh.mu.
func (sh *shard) touch(sess *Session, ttl time.Duration, now time.Time) {
	sess.ExpiresAt = now.Add(ttl)
	if sess.exp == nil {
		sess.exp = &expiry{id: sess.ID, expiresAt: sess.ExpiresAt}
		heap.Push(&sh.expHeap, sess.exp)
		return
	}
	sess.exp.expiresAt = sess.ExpiresAt
	heap.Fix(&sh.expHeap, sess.exp.index)
}

// remove drops sess together with its heap entry. Callers hold sh.mu.
func (sh *shard) remove(sess *Session) {
	if sess.exp != nil && sess.exp.index >= 0 {
		heap.Remove(&sh.expHeap, sess.exp.index)
	}
	sess.exp = nil
	delete(sh.sessions, sess.ID)
}

// evict drops sessions whose deadline passed and returns how many were removed.
func (sh *shard) evict(now time.Time) int {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	removed := 0
	for len(sh.expHeap) > 0 {
		top := sh.expHeap[0]
		if top.expiresAt.After(now) {
			break
		}
		heap.Pop(&sh.expHeap)

		if sess, ok := sh.sessions[top.id]; ok && sess.exp == top {
			sess.exp = nil
			delete(sh.sessions, top.id)
			removed++
		}
	}
	return removed
}
