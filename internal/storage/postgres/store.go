package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eventScope/internal/model"
)

// Store provides Postgres persistence for classified transactions. The
// engine itself persists nothing; this is a caller-side sink.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertClassified inserts or updates classified transactions, events and
// receipt stored as JSON documents keyed by tx hash.
func (s *Store) UpsertClassified(ctx context.Context, results []model.ClassifiedTransaction) error {
	if len(results) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, result := range results {
		events, err := json.Marshal(result.Events)
		if err != nil {
			return fmt.Errorf("marshal events for %s: %w", result.TxHash, err)
		}
		var receipt []byte
		if result.Receipt != nil {
			receipt, err = json.Marshal(result.Receipt)
			if err != nil {
				return fmt.Errorf("marshal receipt for %s: %w", result.TxHash, err)
			}
		}
		batch.Queue(`
			INSERT INTO classified_transactions (
				tx_hash, sender, events, receipt, created_at, updated_at
			) VALUES ($1, $2, $3, $4, now(), now())
			ON CONFLICT (tx_hash)
			DO UPDATE SET
				sender = EXCLUDED.sender,
				events = EXCLUDED.events,
				receipt = EXCLUDED.receipt,
				updated_at = now()
		`,
			result.TxHash,
			result.Sender.Hex(),
			events,
			receipt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range results {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
