package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cinema-booking-platform/internal/models"
	"cinema-booking-platform/pkg/logger"
)

const progressKeyPrefix = "booking:progress:"

// ProgressRepository stores booking drafts in Redis as JSON snapshots.
// The TTL bounds storage at the freshness window; Load additionally
// checks SavedAt so a snapshot past the window is never rehydrated even
// if the key is still present.
type ProgressRepository struct {
	cli *redis.Client
	log logger.Logger
}

// NewProgressRepository creates a new progress repository.
func NewProgressRepository(cli *redis.Client, log logger.Logger) *ProgressRepository {
	return &ProgressRepository{cli: cli, log: log}
}

func progressKey(sessionID string) string {
	return progressKeyPrefix + sessionID
}

// Load returns the session's booking draft. Missing, corrupted, or
// stale snapshots all yield models.ErrProgressNotFound.
func (r *ProgressRepository) Load(ctx context.Context, sessionID string) (*models.BookingProgress, error) {
	data, err := r.cli.Get(ctx, progressKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, models.ErrProgressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking progress: %w", err)
	}

	progress, err := decodeProgressSnapshot(data, time.Now())
	if err != nil {
		r.log.Debug("discarding booking progress", "session_id", sessionID, "error", err)
		r.cli.Del(ctx, progressKey(sessionID))
		return nil, models.ErrProgressNotFound
	}

	return progress, nil
}

// decodeProgressSnapshot parses a persisted draft and enforces the
// freshness window: a snapshot older than models.ProgressMaxAge is
// never rehydrated, even if the store still holds the key.
func decodeProgressSnapshot(data []byte, now time.Time) (*models.BookingProgress, error) {
	var progress models.BookingProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		return nil, fmt.Errorf("corrupted snapshot: %w", err)
	}
	if !progress.Fresh(now) {
		return nil, fmt.Errorf("snapshot aged out (%s)", progress.Age(now))
	}
	return &progress, nil
}

// Save stamps SavedAt and rewrites the snapshot with the freshness TTL.
func (r *ProgressRepository) Save(ctx context.Context, sessionID string, progress *models.BookingProgress) error {
	progress.SavedAt = time.Now()

	data, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("failed to marshal booking progress: %w", err)
	}

	if err := r.cli.Set(ctx, progressKey(sessionID), data, models.ProgressMaxAge).Err(); err != nil {
		return fmt.Errorf("failed to save booking progress: %w", err)
	}
	return nil
}

// Delete removes the session's draft.
func (r *ProgressRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.cli.Del(ctx, progressKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete booking progress: %w", err)
	}
	return nil
}

// SweepExpired removes drafts whose SavedAt has passed the freshness
// window. The TTL already expires well-behaved keys; the sweep catches
// snapshots rewritten by older versions or left behind by clock skew.
func (r *ProgressRepository) SweepExpired(ctx context.Context) (int, error) {
	var removed int
	now := time.Now()

	iter := r.cli.Scan(ctx, 0, progressKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		data, err := r.cli.Get(ctx, key).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return removed, fmt.Errorf("failed to read %s: %w", key, err)
		}

		var progress models.BookingProgress
		if err := json.Unmarshal(data, &progress); err != nil || !progress.Fresh(now) {
			if err := r.cli.Del(ctx, key).Err(); err != nil {
				return removed, fmt.Errorf("failed to delete %s: %w", key, err)
			}
			removed++
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("progress sweep scan failed: %w", err)
	}

	return removed, nil
}
