package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/peterbourgon/diskv/v3"
)

const saveMaxRetries = 3

// DiskStore persists each user's ledger under its own diskv key, so writes
// for different users never touch shared state. A per-user mutex serializes
// read-modify-write cycles for one user.
type DiskStore struct {
	d *diskv.Diskv

	defaultCalories int
	defaultProtein  int

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewDiskStore(basePath string, defaultCalories, defaultProtein int) (*DiskStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("ensure ledger dir: %w", err)
	}
	return &DiskStore{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 1024 * 1024,
		}),
		defaultCalories: defaultCalories,
		defaultProtein:  defaultProtein,
		locks:           make(map[int64]*sync.Mutex),
	}, nil
}

func (s *DiskStore) userLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

func key(userID int64) string { return strconv.FormatInt(userID, 10) }

func (s *DiskStore) Load(ctx context.Context, userID int64) (Ledger, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()
	return s.loadLocked(ctx, userID)
}

func (s *DiskStore) loadLocked(ctx context.Context, userID int64) (Ledger, error) {
	if err := ctx.Err(); err != nil {
		return Ledger{}, err
	}
	k := key(userID)
	if !s.d.Has(k) {
		led := NewLedger(s.defaultCalories, s.defaultProtein)
		if err := s.writeLocked(ctx, userID, led); err != nil {
			return Ledger{}, fmt.Errorf("persist default ledger for %d: %w", userID, err)
		}
		return led, nil
	}
	data, err := s.d.Read(k)
	if err != nil {
		return Ledger{}, fmt.Errorf("read ledger %d: %w", userID, err)
	}
	var led Ledger
	if err := json.Unmarshal(data, &led); err != nil {
		return Ledger{}, fmt.Errorf("decode ledger %d: %w", userID, err)
	}
	led.upgrade()
	return led, nil
}

func (s *DiskStore) Save(ctx context.Context, userID int64, led Ledger) error {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()
	return s.writeLocked(ctx, userID, led)
}

// Update runs fn against the current ledger and persists the result while
// holding the user's lock, so concurrent updates for the same user cannot
// interleave and updates for different users proceed independently.
func (s *DiskStore) Update(ctx context.Context, userID int64, fn func(*Ledger) error) error {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()
	led, err := s.loadLocked(ctx, userID)
	if err != nil {
		return err
	}
	if err := fn(&led); err != nil {
		return err
	}
	return s.writeLocked(ctx, userID, led)
}

func (s *DiskStore) writeLocked(ctx context.Context, userID int64, led Ledger) error {
	led.Schema = CurrentSchema
	data, err := json.Marshal(led)
	if err != nil {
		return fmt.Errorf("encode ledger %d: %w", userID, err)
	}
	op := func() error { return s.d.Write(key(userID), data) }
	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), saveMaxRetries),
		ctx,
	)
	if err := backoff.Retry(op, b); err != nil {
		return fmt.Errorf("write ledger %d: %w", userID, err)
	}
	return nil
}
