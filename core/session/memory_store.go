package session

import (
	"container/list"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/hajimekit/hajime/core/logger"
)

// entry is one live session. elem points at its node in the recency list.
type entry struct {
	id         string
	bag        *Bag
	lastAccess time.Time
	elem       *list.Element
}

// MemoryStore is a process-local Store with idle expiry and an LRU capacity bound.
// Sessions are not durable: they disappear on restart.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	recency *list.List // front = most recently used

	// Configuration
	ttl             time.Duration
	capacity        int
	cleanupInterval time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
	now             func() time.Time
	newID           func() string

	// Janitor state
	cancel  context.CancelFunc
	running atomic.Bool
	wg      sync.WaitGroup

	// Observability metrics
	created atomic.Int64
	expired atomic.Int64
	evicted atomic.Int64
}

// MemoryStoreStats provides observability metrics for monitoring and debugging.
type MemoryStoreStats struct {
	Active    int   // Current number of live sessions
	Created   int64 // Total sessions minted
	Expired   int64 // Total sessions removed for idling past the TTL
	Evicted   int64 // Total sessions removed to respect the capacity bound
	IsRunning bool  // Whether the janitor goroutine is running
}

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithTTL sets the idle timeout. Zero or negative disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *MemoryStore) {
		s.ttl = ttl
	}
}

// WithCapacity bounds the number of live sessions. Zero or negative disables the bound.
func WithCapacity(n int) Option {
	return func(s *MemoryStore) {
		s.capacity = n
	}
}

// WithCleanupInterval sets how often the janitor sweeps expired sessions.
func WithCleanupInterval(interval time.Duration) Option {
	return func(s *MemoryStore) {
		s.cleanupInterval = interval
	}
}

// WithShutdownTimeout sets how long Stop waits for an in-flight sweep.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *MemoryStore) {
		if timeout > 0 {
			s.shutdownTimeout = timeout
		}
	}
}

// WithLogger sets the logger for internal operations.
func WithLogger(logger *slog.Logger) Option {
	return func(s *MemoryStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides session identifier generation (default: UUID v4).
func WithIDGenerator(fn func() string) Option {
	return func(s *MemoryStore) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewMemoryStore creates an in-memory session store.
// Call Start (or Run) to enable the background janitor.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		entries:         make(map[string]*entry),
		recency:         list.New(),
		ttl:             24 * time.Hour,
		capacity:        10000,
		cleanupInterval: 5 * time.Minute,
		shutdownTimeout: 30 * time.Second,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:             time.Now,
		newID:           uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Resolve implements Store.
func (s *MemoryStore) Resolve(ctx context.Context, cookieHeader string) (string, *Bag) {
	id, ok := ParseCookie(cookieHeader, CookieName)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if ok {
		if e, found := s.entries[id]; found {
			if !s.isExpired(e, now) {
				s.touch(e, now)
				return e.id, e.bag
			}
			s.remove(e)
			s.expired.Add(1)
		}
	}

	e := s.insert(s.mintID(), NewBag(), now)
	s.created.Add(1)
	return e.id, e.bag
}

// Persist implements Store. An unknown id is inserted, which also revives a
// session the janitor has already evicted.
func (s *MemoryStore) Persist(ctx context.Context, id string, bag *Bag) {
	if id == "" {
		return
	}
	if bag == nil {
		bag = NewBag()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, found := s.entries[id]; found {
		e.bag = bag
		s.touch(e, now)
		return
	}
	s.insert(id, bag, now)
}

// Delete removes a session.
func (s *MemoryStore) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, found := s.entries[id]; found {
		s.remove(e)
	}
}

// Len returns the number of live sessions, including expired ones not yet swept.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// DeleteExpired removes every session idle longer than the TTL and returns how many were removed.
func (s *MemoryStore) DeleteExpired(ctx context.Context) int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	// Oldest entries sit at the back; stop at the first live one.
	for el := s.recency.Back(); el != nil; {
		e := el.Value.(*entry)
		if !s.isExpired(e, now) {
			break
		}
		prev := el.Prev()
		s.remove(e)
		removed++
		el = prev
	}

	if removed > 0 {
		s.expired.Add(int64(removed))
	}
	return removed
}

// Start runs the janitor until ctx is cancelled or Stop is called.
// This is a blocking operation; use Run for the errgroup pattern.
func (s *MemoryStore) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return ErrStoreAlreadyStarted
	}
	if s.cleanupInterval <= 0 {
		s.mu.Unlock()
		return ErrCleanupDisabled
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	s.running.Store(true)
	defer s.running.Store(false)

	s.logger.InfoContext(runCtx, "session janitor started",
		slog.Duration("cleanup_interval", s.cleanupInterval),
		slog.Duration("ttl", s.ttl),
		slog.Int("capacity", s.capacity))

	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-runCtx.Done():
			s.logger.InfoContext(context.Background(), "session janitor stopping")
			return runCtx.Err()
		case <-ticker.C:
			s.sweep(runCtx)
		}
	}
}

// Stop cancels the janitor and waits for an in-flight sweep up to the shutdown timeout.
func (s *MemoryStore) Stop() error {
	s.mu.Lock()
	if s.cancel == nil {
		s.mu.Unlock()
		return ErrStoreNotStarted
	}
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(s.shutdownTimeout):
		s.logger.Warn("session janitor shutdown timeout exceeded",
			slog.Duration("timeout", s.shutdownTimeout))
		return ErrShutdownTimeout
	}
}

// Run provides errgroup compatibility for coordinated lifecycle management.
func (s *MemoryStore) Run(ctx context.Context) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- s.Start(ctx)
		}()

		select {
		case <-ctx.Done():
			_ = s.Stop()
			<-errCh
			return nil
		case err := <-errCh:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

// Stats returns current store statistics.
func (s *MemoryStore) Stats() MemoryStoreStats {
	s.mu.Lock()
	active := len(s.entries)
	s.mu.Unlock()

	return MemoryStoreStats{
		Active:    active,
		Created:   s.created.Load(),
		Expired:   s.expired.Load(),
		Evicted:   s.evicted.Load(),
		IsRunning: s.running.Load(),
	}
}

// Healthcheck reports an error when expiry is configured but the janitor is not running.
func (s *MemoryStore) Healthcheck(ctx context.Context) error {
	if s.ttl > 0 && s.cleanupInterval > 0 && !s.running.Load() {
		return ErrJanitorNotRunning
	}
	return nil
}

func (s *MemoryStore) sweep(ctx context.Context) {
	s.wg.Add(1)
	defer s.wg.Done()

	if n := s.DeleteExpired(ctx); n > 0 {
		s.logger.DebugContext(ctx, "expired sessions removed", slog.Int("count", n))
	}
}

// mintID returns an identifier not currently in use. Caller holds s.mu.
// A generator that keeps colliding is abandoned for random UUIDs.
func (s *MemoryStore) mintID() string {
	for range maxMintAttempts {
		id := s.newID()
		if _, taken := s.entries[id]; !taken && id != "" {
			return id
		}
	}

	s.logger.Warn("session id generator kept colliding, falling back to uuid", logger.Component("session"))
	for {
		id := uuid.NewString()
		if _, taken := s.entries[id]; !taken {
			return id
		}
	}
}

// insert adds a session and enforces the capacity bound. Caller holds s.mu.
func (s *MemoryStore) insert(id string, bag *Bag, now time.Time) *entry {
	e := &entry{id: id, bag: bag, lastAccess: now}
	e.elem = s.recency.PushFront(e)
	s.entries[id] = e

	if s.capacity > 0 {
		for len(s.entries) > s.capacity {
			oldest := s.recency.Back()
			if oldest == nil || oldest == e.elem {
				break
			}
			s.remove(oldest.Value.(*entry))
			s.evicted.Add(1)
		}
	}
	return e
}

// touch marks e as used now. Caller holds s.mu.
func (s *MemoryStore) touch(e *entry, now time.Time) {
	e.lastAccess = now
	s.recency.MoveToFront(e.elem)
}

// remove drops e. Caller holds s.mu.
func (s *MemoryStore) remove(e *entry) {
	s.recency.Remove(e.elem)
	delete(s.entries, e.id)
}

func (s *MemoryStore) isExpired(e *entry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.lastAccess) > s.ttl
}
