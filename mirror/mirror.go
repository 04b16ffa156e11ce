// Package mirror copies the word frequency table into a MongoDB collection
// at a fixed interval so it can be inspected outside the process.
//
// The mirror is write-only: the gateway never reads counts back, so a restart
// still begins with an empty tracker.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/drblury/wordgate/frequency"
)

// DefaultInterval is used when no positive interval is configured.
const DefaultInterval = 30 * time.Second

// flushTimeout bounds the final flush performed when Run stops.
const flushTimeout = 5 * time.Second

// Source supplies the entries to mirror.
type Source interface {
	Snapshot() []frequency.WordCount
}

// Collection is the subset of *mongo.Collection used by the mirror.
type Collection interface {
	BulkWrite(ctx context.Context, models []mongo.WriteModel, opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error)
}

// Option configures a Mirror.
type Option func(*Mirror)

// WithInterval sets the flush interval.
func WithInterval(interval time.Duration) Option {
	return func(m *Mirror) {
		if interval > 0 {
			m.interval = interval
		}
	}
}

// WithLogger sets the logger used for flush failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mirror) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Mirror upserts one document per word: {_id: word, frequency, updatedAt}.
// Only entries whose count changed since the previous successful flush are
// written.
type Mirror struct {
	source   Source
	coll     Collection
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	flushed map[string]int
}

// New builds a Mirror of source into coll.
func New(source Source, coll Collection, opts ...Option) *Mirror {
	m := &Mirror{
		source:   source,
		coll:     coll,
		interval: DefaultInterval,
		logger:   slog.Default(),
		now:      time.Now,
		flushed:  make(map[string]int),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Flush writes the changed entries. It is not safe to call Flush
// concurrently; Run serialises its own calls.
func (m *Mirror) Flush(ctx context.Context) (int, error) {
	if m.source == nil || m.coll == nil {
		return 0, errors.New("mirror: source and collection are required")
	}

	snapshot := m.source.Snapshot()
	models := make([]mongo.WriteModel, 0, len(snapshot))
	changed := make([]frequency.WordCount, 0, len(snapshot))
	updatedAt := m.now().UTC()

	for _, entry := range snapshot {
		if m.flushed[entry.Word] == entry.Frequency {
			continue
		}
		changed = append(changed, entry)
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.D{{Key: "_id", Value: entry.Word}}).
			SetUpdate(bson.D{{Key: "$set", Value: bson.D{
				{Key: "frequency", Value: entry.Frequency},
				{Key: "updatedAt", Value: updatedAt},
			}}}).
			SetUpsert(true))
	}
	if len(models) == 0 {
		return 0, nil
	}

	if _, err := m.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
		return 0, fmt.Errorf("mirror: bulk write of %d words: %w", len(models), err)
	}
	for _, entry := range changed {
		m.flushed[entry.Word] = entry.Frequency
	}
	return len(models), nil
}

// Run flushes every interval until ctx is cancelled, then performs a last
// flush with a short timeout. Flush errors are logged and retried on the next
// tick.
func (m *Mirror) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			final, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
			m.flushAndLog(final)
			cancel()
			return
		case <-ticker.C:
			m.flushAndLog(ctx)
		}
	}
}

func (m *Mirror) flushAndLog(ctx context.Context) {
	written, err := m.Flush(ctx)
	if err != nil {
		m.logger.WarnContext(ctx, "frequency mirror flush failed", "error", err)
		return
	}
	if written > 0 {
		m.logger.DebugContext(ctx, "frequency mirror flushed", "words", written)
	}
}
