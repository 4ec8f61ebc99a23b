package pubsub

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/ports"
	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
)

const pubsubDir = "pubsub"

// ErrSubscriptionNotFound ...
var ErrSubscriptionNotFound = fmt.Errorf("webhook %w", domain.ErrNotFound)

type inmemoryStore struct {
	lock *sync.RWMutex
	subs map[string]Subscription
}

// NewInmemoryStore returns a PubSubStore that loses every subscription on
// restart.
func NewInmemoryStore() ports.PubSubStore {
	return &inmemoryStore{&sync.RWMutex{}, make(map[string]Subscription)}
}

func (s *inmemoryStore) AddSubscription(_ context.Context, sub ports.Subscription) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.subs[sub.Id()] = subscriptionFromPort(sub)
	return nil
}

func (s *inmemoryStore) RemoveSubscription(_ context.Context, id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.subs[id]; !ok {
		return ErrSubscriptionNotFound
	}
	delete(s.subs, id)
	return nil
}

func (s *inmemoryStore) ListSubscriptions(_ context.Context) ([]ports.Subscription, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	subs := make(subscriptions, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	sortSubscriptions(subs)
	return subs.toPortable(), nil
}

func (s *inmemoryStore) Close() error {
	return nil
}

type badgerStore struct {
	store *badgerhold.Store
}

// NewBadgerStore opens (or creates if not exists) the subscriptions store
// under the given base dir. An empty baseDbDir opens an in-memory store.
func NewBadgerStore(baseDbDir string, logger badger.Logger) (ports.PubSubStore, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, pubsubDir)
	}

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger
	opts.InMemory = len(dbDir) <= 0

	store, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, fmt.Errorf("opening pubsub db: %w", err)
	}
	return &badgerStore{store}, nil
}

func (s *badgerStore) AddSubscription(_ context.Context, sub ports.Subscription) error {
	return s.store.Upsert(sub.Id(), subscriptionFromPort(sub))
}

func (s *badgerStore) RemoveSubscription(_ context.Context, id string) error {
	if err := s.store.Delete(id, Subscription{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return ErrSubscriptionNotFound
		}
		return err
	}
	return nil
}

func (s *badgerStore) ListSubscriptions(_ context.Context) ([]ports.Subscription, error) {
	var subs subscriptions
	if err := s.store.Find(&subs, nil); err != nil {
		return nil, err
	}
	sortSubscriptions(subs)
	return subs.toPortable(), nil
}

func (s *badgerStore) Close() error {
	return s.store.Close()
}

func sortSubscriptions(subs subscriptions) {
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].ID < subs[j].ID
	})
}
