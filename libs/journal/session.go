package journal

import (
	"context"
	"sync"
	"sync/atomic"
)

// Session holds the current token and broadcasts whether one is present.
// Every write emits, even when presence does not change.
type Session struct {
	current atomic.Pointer[Token]

	mu          sync.Mutex
	subscribers map[*Subscription]struct{}
}

// NewSession returns an unauthenticated session.
func NewSession() *Session {
	return &Session{subscribers: make(map[*Subscription]struct{})}
}

// Token returns the current token, if any.
func (s *Session) Token() (Token, bool) {
	t := s.current.Load()
	if t == nil {
		return Token{}, false
	}
	return *t, true
}

// IsAuthenticated reports whether a token is held.
func (s *Session) IsAuthenticated() bool {
	return s.current.Load() != nil
}

func (s *Session) accessToken() string {
	if t := s.current.Load(); t != nil {
		return t.AccessToken
	}
	return ""
}

// Set replaces the token.
func (s *Session) Set(token Token) {
	s.store(&token)
}

// Clear drops the token; this is the only way to log out.
func (s *Session) Clear() {
	s.store(nil)
}

func (s *Session) store(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Store(token)
	authenticated := token != nil
	for sub := range s.subscribers {
		sub.offer(authenticated)
	}
}

// Subscribe registers a listener. The returned subscription's channel holds
// the current value straight away and then every later one.
func (s *Session) Subscribe() *Subscription {
	sub := &Subscription{
		ch:      make(chan bool, 1),
		session: s,
	}
	sub.C = sub.ch

	s.mu.Lock()
	defer s.mu.Unlock()
	sub.offer(s.current.Load() != nil)
	s.subscribers[sub] = struct{}{}
	return sub
}

// Observe calls fn with the current value and each later one until ctx is
// done. It blocks, so callers usually run it in a goroutine.
func (s *Session) Observe(ctx context.Context, fn func(authenticated bool)) {
	sub := s.Subscribe()
	defer sub.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-sub.C:
			if !ok {
				return
			}
			fn(v)
		}
	}
}

func (s *Session) unsubscribe(sub *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[sub]; !ok {
		return
	}
	delete(s.subscribers, sub)
	close(sub.ch)
}

// Subscription receives authentication state changes on C. C is a
// single-slot mailbox: a reader that falls behind sees only the newest
// value.
type Subscription struct {
	C <-chan bool

	ch      chan bool
	session *Session
}

// offer replaces any undelivered value with v. Callers hold Session.mu,
// which makes them the only senders.
func (sub *Subscription) offer(v bool) {
	for {
		select {
		case sub.ch <- v:
			return
		default:
		}
		select {
		case <-sub.ch:
		default:
		}
	}
}

// Close stops delivery and closes C. It is safe to call more than once.
func (sub *Subscription) Close() {
	sub.session.unsubscribe(sub)
}
