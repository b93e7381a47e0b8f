package catering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var ErrSubmissionNotFound = errors.New("submission not found")

type postgresRepository struct {
	db     *pgxpool.Pool
	policy DedupPolicy
}

func NewRepository(db *pgxpool.Pool, policy DedupPolicy) SubmissionStore {
	return &postgresRepository{db: db, policy: policy}
}

func (r *postgresRepository) Reserve(ctx context.Context, key string, now time.Time) (*Submission, error) {
	// A concurrent Release can delete the row between the failed insert and
	// the takeover select; one retry covers it.
	for attempt := 0; attempt < 2; attempt++ {
		err := r.insertPending(ctx, key, now)
		if err == nil {
			return nil, nil
		}

		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("repository: failed to insert submission %s: %w", key, err)
		}

		existing, err := r.takeOver(ctx, key, now)
		if errors.Is(err, ErrSubmissionNotFound) {
			continue
		}
		return existing, err
	}
	return nil, fmt.Errorf("repository: failed to reserve submission %s after retry", key)
}

func (r *postgresRepository) insertPending(ctx context.Context, key string, now time.Time) error {
	query := `
		INSERT INTO catering.submissions (idempotency_key, status, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
	`
	_, err := r.db.Exec(ctx, query, key, string(SubmissionPending), now)
	return err
}

// takeOver reclaims a stale record, or returns the live one unchanged.
func (r *postgresRepository) takeOver(ctx context.Context, key string, now time.Time) (existing *Submission, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				log.Error().Err(rbErr).Str("form_key", key).Msg("repository: failed to rollback transaction")
			}
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			err = fmt.Errorf("repository: failed to commit transaction: %w", commitErr)
			existing = nil
		}
	}()

	query := `
		SELECT idempotency_key, status, result, created_at, updated_at
		FROM catering.submissions
		WHERE idempotency_key = $1
		FOR UPDATE
	`
	var (
		s      Submission
		status string
	)
	err = tx.QueryRow(ctx, query, key).Scan(&s.Key, &status, &s.Result, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("repository: failed to select submission %s: %w", key, err)
	}
	s.Status = SubmissionStatus(status)

	if r.policy.live(&s, now) {
		return &s, nil
	}

	update := `
		UPDATE catering.submissions
		SET status = $2, result = NULL, created_at = $3, updated_at = $3
		WHERE idempotency_key = $1
	`
	if _, err = tx.Exec(ctx, update, key, string(SubmissionPending), now); err != nil {
		return nil, fmt.Errorf("repository: failed to reclaim submission %s: %w", key, err)
	}
	log.Info().Str("form_key", key).Str("previous_status", status).Msg("repository: stale submission reclaimed")
	return nil, nil
}

func (r *postgresRepository) Complete(ctx context.Context, key string, result []byte, now time.Time) error {
	query := `
		UPDATE catering.submissions
		SET status = $2, result = $3, updated_at = $4
		WHERE idempotency_key = $1
	`
	tag, err := r.db.Exec(ctx, query, key, string(SubmissionCompleted), result, now)
	if err != nil {
		return fmt.Errorf("repository: failed to complete submission %s: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repository: %w: %s", ErrSubmissionNotFound, key)
	}
	return nil
}

func (r *postgresRepository) Release(ctx context.Context, key string) error {
	query := `
		DELETE FROM catering.submissions
		WHERE idempotency_key = $1 AND status = $2
	`
	if _, err := r.db.Exec(ctx, query, key, string(SubmissionPending)); err != nil {
		return fmt.Errorf("repository: failed to release submission %s: %w", key, err)
	}
	return nil
}
