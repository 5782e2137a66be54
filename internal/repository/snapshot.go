package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"brawlhalla-tracker/internal/database"
	"brawlhalla-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// SnapshotRepository caches fetched ranked payloads so repeated lookups for
// the same account within the TTL skip the stats provider.
type SnapshotRepository struct {
	pool   Pool
	logger zerolog.Logger
}

func NewSnapshotRepository(db *database.DB, logger zerolog.Logger) *SnapshotRepository {
	return newSnapshotRepository(db, logger)
}

func newSnapshotRepository(pool Pool, logger zerolog.Logger) *SnapshotRepository {
	return &SnapshotRepository{pool: pool, logger: logger}
}

// Get returns the cached ranked stats for an account when the snapshot is
// younger than ttl; fresh false means no usable snapshot.
func (r *SnapshotRepository) Get(ctx context.Context, brawlhallaID int64, ttl time.Duration) (*domain.RankedStats, bool, error) {
	var payload string
	var fetchedAt time.Time
	err := r.pool.Conn().QueryRowContext(ctx,
		"SELECT payload, fetched_at FROM ranked_snapshots WHERE brawlhalla_id = ?", brawlhallaID,
	).Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get snapshot for %d: %w", brawlhallaID, err)
	}

	age := time.Since(fetchedAt)
	if age > ttl {
		r.logger.Debug().Int64("brawlhalla_id", brawlhallaID).Dur("age", age).Msg("snapshot stale")
		return nil, false, nil
	}

	var stats domain.RankedStats
	if err := json.Unmarshal([]byte(payload), &stats); err != nil {
		return nil, false, fmt.Errorf("failed to decode snapshot for %d: %w", brawlhallaID, err)
	}

	r.logger.Debug().Int64("brawlhalla_id", brawlhallaID).Dur("age", age).Msg("snapshot hit")
	return &stats, true, nil
}

// Put stores or replaces the snapshot for an account.
func (r *SnapshotRepository) Put(ctx context.Context, brawlhallaID int64, stats *domain.RankedStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot for %d: %w", brawlhallaID, err)
	}

	_, err = r.pool.Conn().ExecContext(ctx, `
		INSERT INTO ranked_snapshots (brawlhalla_id, payload, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(brawlhalla_id) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at
	`, brawlhallaID, string(payload), time.Now())
	if err != nil {
		return fmt.Errorf("failed to store snapshot for %d: %w", brawlhallaID, err)
	}
	return nil
}
