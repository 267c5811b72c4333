package prefs

import (
	"slices"
	"sync"
)

// Listener receives preference changes. force is true for the initial
// delivery made when the listener subscribes.
type Listener interface {
	OnConfigChanged(key Key, cfg Config, force bool)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(key Key, cfg Config, force bool)

// OnConfigChanged calls f.
func (f ListenerFunc) OnConfigChanged(key Key, cfg Config, force bool) { f(key, cfg, force) }

// Subscription identifies one Subscribe call.
type Subscription uint64

// Provider is the read side of a preference store, as consumed by the
// layout resolver.
type Provider interface {
	Snapshot() Config
	Subscribe(l Listener, keys ...Key) Subscription
	Unsubscribe(id Subscription)
}

type subscriber struct {
	id   Subscription
	keys []Key
	l    Listener
}

// Store is a concurrency-safe, in-memory Provider.
type Store struct {
	mu   sync.Mutex
	cfg  Config
	next Subscription
	subs []subscriber
}

// NewStore returns a Store holding cfg after normalization.
func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg.Normalize()}
}

// Snapshot returns the current preferences.
func (s *Store) Snapshot() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Subscribe registers l for keys (all watched keys when none are given) and
// immediately calls it once per key with force set.
func (s *Store) Subscribe(l Listener, keys ...Key) Subscription {
	if len(keys) == 0 {
		keys = WatchedKeys()
	}
	s.mu.Lock()
	s.next++
	id := s.next
	s.subs = append(s.subs, subscriber{id: id, keys: slices.Clone(keys), l: l})
	cfg := s.cfg
	s.mu.Unlock()

	for _, k := range keys {
		l.OnConfigChanged(k, cfg, true)
	}
	return id
}

// Unsubscribe removes a subscription. Unknown ids are ignored.
func (s *Store) Unsubscribe(id Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
}

// Len returns the number of active subscriptions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Set updates a single key from its textual form and notifies subscribers.
// The key is applied to the current preferences under the store lock, so
// concurrent Sets of different keys all persist.
func (s *Store) Set(k Key, raw string) error {
	_, err := s.update(func(cur Config) (Config, error) { return cur.With(k, raw) })
	return err
}

// Replace swaps in cfg (normalized) and notifies every subscriber watching a
// changed key, once per changed key. It returns the changed keys.
func (s *Store) Replace(cfg Config) []Key {
	changed, _ := s.update(func(Config) (Config, error) { return cfg, nil })
	return changed
}

func (s *Store) update(fn func(Config) (Config, error)) ([]Key, error) {
	s.mu.Lock()
	cfg, err := fn(s.cfg)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	cfg = cfg.Normalize()
	changed := s.cfg.Diff(cfg)
	s.cfg = cfg
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, k := range changed {
		for _, sub := range subs {
			if slices.Contains(sub.keys, k) {
				sub.l.OnConfigChanged(k, cfg, false)
			}
		}
	}
	return changed, nil
}
