// Package rediscache decorates any snapshot.Loader with a Redis-backed
// read-through cache, keyed by department id. It never becomes the source
// of truth: a cache miss or a Redis outage falls straight through to the
// wrapped loader.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-solver/internal/metrics"
	"github.com/noah-isme/timetable-solver/internal/snapshot"
)

// Loader decorates a snapshot.Loader with a read-through Redis cache.
type Loader struct {
	next    snapshot.Loader
	client  *redis.Client
	ttl     time.Duration
	logger  *zap.Logger
	metrics *metrics.Collector
}

// New builds a read-through cache in front of next. A non-positive ttl
// defaults to five minutes.
func New(next snapshot.Loader, client *redis.Client, ttl time.Duration, logger *zap.Logger, collector *metrics.Collector) *Loader {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{next: next, client: client, ttl: ttl, logger: logger, metrics: collector}
}

func (l *Loader) get(ctx context.Context, key string, dest interface{}) bool {
	if l.client == nil {
		return false
	}
	raw, err := l.client.Get(ctx, key).Bytes()
	if err != nil {
		if l.metrics != nil {
			l.metrics.RecordCacheOperation(false)
		}
		if err != redis.Nil {
			l.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		l.logger.Warn("cache value unmarshal failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if l.metrics != nil {
		l.metrics.RecordCacheOperation(true)
	}
	return true
}

func (l *Loader) set(ctx context.Context, key string, value interface{}) {
	if l.client == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		l.logger.Warn("cache value marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := l.client.Set(ctx, key, payload, l.ttl).Err(); err != nil {
		l.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Subjects serves from cache when present, otherwise delegates and
// populates the cache for next time.
func (l *Loader) Subjects(ctx context.Context, departmentID string) ([]snapshot.Subject, error) {
	key := fmt.Sprintf("timetable:subjects:%s", departmentID)
	var cached []snapshot.Subject
	if l.get(ctx, key, &cached) {
		return cached, nil
	}
	subjects, err := l.next.Subjects(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	l.set(ctx, key, subjects)
	return subjects, nil
}

// Faculty serves from cache when present, otherwise delegates and
// populates the cache for next time.
func (l *Loader) Faculty(ctx context.Context, departmentID string) ([]snapshot.Faculty, error) {
	key := fmt.Sprintf("timetable:faculty:%s", departmentID)
	var cached []snapshot.Faculty
	if l.get(ctx, key, &cached) {
		return cached, nil
	}
	faculty, err := l.next.Faculty(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	l.set(ctx, key, faculty)
	return faculty, nil
}

// Rooms serves from cache when present, otherwise delegates and populates
// the cache for next time.
func (l *Loader) Rooms(ctx context.Context, departmentID string) ([]snapshot.Room, error) {
	key := fmt.Sprintf("timetable:rooms:%s", departmentID)
	var cached []snapshot.Room
	if l.get(ctx, key, &cached) {
		return cached, nil
	}
	rooms, err := l.next.Rooms(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	l.set(ctx, key, rooms)
	return rooms, nil
}

// Batches serves from cache when present, otherwise delegates and
// populates the cache for next time.
func (l *Loader) Batches(ctx context.Context, departmentID string) ([]snapshot.Batch, error) {
	key := fmt.Sprintf("timetable:batches:%s", departmentID)
	var cached []snapshot.Batch
	if l.get(ctx, key, &cached) {
		return cached, nil
	}
	batches, err := l.next.Batches(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	l.set(ctx, key, batches)
	return batches, nil
}

// Constraints serves from cache when present, otherwise delegates and
// populates the cache for next time.
func (l *Loader) Constraints(ctx context.Context) (snapshot.Constraints, error) {
	const key = "timetable:constraints"
	var cached snapshot.Constraints
	if l.get(ctx, key, &cached) {
		return cached, nil
	}
	constraints, err := l.next.Constraints(ctx)
	if err != nil {
		return snapshot.Constraints{}, err
	}
	l.set(ctx, key, constraints)
	return constraints, nil
}
