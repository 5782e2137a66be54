package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"brawlhalla-tracker/internal/database"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
)

// Pool hands out the current connection pool and can replace it after a
// transient connection failure.
type Pool interface {
	Conn() *sql.DB
	Reconnect() error
}

// LinkRepository persists chat-user to Brawlhalla-account links. Transient
// connection failures get exactly one reconnect-and-retry; a second failure
// propagates as a fatal storage error. The backing connection is observed to
// silently die under idle periods, and unbounded retry would mask permanent
// outages.
type LinkRepository struct {
	pool   Pool
	logger zerolog.Logger
}

func NewLinkRepository(db *database.DB, logger zerolog.Logger) *LinkRepository {
	return newLinkRepository(db, logger)
}

func newLinkRepository(pool Pool, logger zerolog.Logger) *LinkRepository {
	return &LinkRepository{pool: pool, logger: logger}
}

// Get returns the linked Brawlhalla account id for a chat user, with found
// false when no link exists.
func (r *LinkRepository) Get(ctx context.Context, userID int64) (int64, bool, error) {
	var bhID int64
	var found bool
	err := r.withRetry(ctx, func(db *sql.DB) error {
		found = false
		err := db.QueryRowContext(ctx,
			"SELECT brawlhalla_id FROM bot_links WHERE user_id = ?", userID,
		).Scan(&bhID)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return 0, false, fmt.Errorf("failed to get link for user %d: %w", userID, err)
	}
	return bhID, found, nil
}

// Set inserts or overwrites the link for a chat user.
func (r *LinkRepository) Set(ctx context.Context, userID, brawlhallaID int64) error {
	err := r.withRetry(ctx, func(db *sql.DB) error {
		_, err := db.ExecContext(ctx, `
			INSERT INTO bot_links (user_id, brawlhalla_id)
			VALUES (?, ?)
			ON CONFLICT(user_id) DO UPDATE SET
				brawlhalla_id = excluded.brawlhalla_id,
				updated_at = CURRENT_TIMESTAMP
		`, userID, brawlhallaID)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to set link for user %d: %w", userID, err)
	}

	r.logger.Info().Int64("user_id", userID).Int64("brawlhalla_id", brawlhallaID).Msg("link stored")
	return nil
}

// Delete removes the link for a chat user, reporting whether one existed.
func (r *LinkRepository) Delete(ctx context.Context, userID int64) (bool, error) {
	var deleted bool
	err := r.withRetry(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, "DELETE FROM bot_links WHERE user_id = ?", userID)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		deleted = affected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete link for user %d: %w", userID, err)
	}
	return deleted, nil
}

// withRetry runs op against the current pool. On the first transient
// connection failure it swaps the pool and retries once; any further failure
// is returned to the caller.
func (r *LinkRepository) withRetry(ctx context.Context, op func(db *sql.DB) error) error {
	reconnected := false
	backoff := retry.WithMaxRetries(1, retry.NewConstant(time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := op(r.pool.Conn())
		if err == nil {
			return nil
		}
		if reconnected || !database.IsTransient(err) {
			return err
		}

		r.logger.Warn().Err(err).Msg("transient storage failure, reconnecting")
		reconnected = true
		if rerr := r.pool.Reconnect(); rerr != nil {
			return fmt.Errorf("reconnect after transient failure: %w", rerr)
		}
		return retry.RetryableError(err)
	})
}
