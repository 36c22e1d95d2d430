package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tuyensinh/admission-advisor/utils/cache"
)

// Session lock modes accepted by NewSessionLocker
const (
	SessionLockNone  = "none"
	SessionLockLocal = "local"
	SessionLockRedis = "redis"
)

// ErrSessionBusy is returned when a distributed session lock cannot be taken in time
var ErrSessionBusy = errors.New("session is busy")

// SessionLocker serializes message sends on one chat session. The returned
// function releases the lock and is safe to call once.
type SessionLocker interface {
	Lock(ctx context.Context, sessionID uint) (func(), error)
}

// NewSessionLocker returns the locker for mode. The redis mode falls back to
// the in-process locker when rc is nil.
func NewSessionLocker(mode string, rc *cache.RedisCache, logger zerolog.Logger) SessionLocker {
	switch mode {
	case SessionLockLocal:
		return NewLocalSessionLocker()
	case SessionLockRedis:
		if rc == nil {
			logger.Warn().Msg("CHAT_SESSION_LOCK=redis without a Redis connection, using in-process locks")
			return NewLocalSessionLocker()
		}
		return NewRedisSessionLocker(rc)
	default:
		return noopSessionLocker{}
	}
}

type noopSessionLocker struct{}

func (noopSessionLocker) Lock(context.Context, uint) (func(), error) {
	return func() {}, nil
}

type localLock struct {
	mu   sync.Mutex
	refs int
}

// LocalSessionLocker keeps one mutex per session id in memory; entries are
// dropped when no caller holds or waits for them.
type LocalSessionLocker struct {
	mu    sync.Mutex
	locks map[uint]*localLock
}

func NewLocalSessionLocker() *LocalSessionLocker {
	return &LocalSessionLocker{locks: make(map[uint]*localLock)}
}

func (l *LocalSessionLocker) Lock(ctx context.Context, sessionID uint) (func(), error) {
	l.mu.Lock()
	entry, ok := l.locks[sessionID]
	if !ok {
		entry = &localLock{}
		l.locks[sessionID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			entry.mu.Unlock()
			l.mu.Lock()
			entry.refs--
			if entry.refs == 0 {
				delete(l.locks, sessionID)
			}
			l.mu.Unlock()
		})
	}, nil
}

// RedisSessionLocker takes a SETNX lock per session so sends are serialized
// across API instances.
type RedisSessionLocker struct {
	cache   *cache.RedisCache
	ttl     time.Duration
	wait    time.Duration
	backoff time.Duration
}

func NewRedisSessionLocker(rc *cache.RedisCache) *RedisSessionLocker {
	return &RedisSessionLocker{
		cache:   rc,
		ttl:     2 * time.Minute,
		wait:    30 * time.Second,
		backoff: 100 * time.Millisecond,
	}
}

func sessionLockKey(sessionID uint) string {
	return fmt.Sprintf("chat:session:lock:%d", sessionID)
}

func (l *RedisSessionLocker) Lock(ctx context.Context, sessionID uint) (func(), error) {
	key := sessionLockKey(sessionID)
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.cache.SetNX(ctx, key, token, l.ttl)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire session lock: %w", err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, ErrSessionBusy
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.backoff):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_, _ = l.cache.ReleaseIfOwner(releaseCtx, key, token)
		})
	}, nil
}
