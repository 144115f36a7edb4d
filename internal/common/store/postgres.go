package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/placementcell/go-talent/internal/domain"
)

// PostgresStore persists platform stats to PostgreSQL
type PostgresStore struct {
	db        *sql.DB
	tableName string
}

// NewPostgresStore opens a connection and ensures the stats table exists
func NewPostgresStore(connStr string, tableName string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &PostgresStore{db: db, tableName: tableName}
	if err := s.ensureTable(); err != nil {
		return nil, fmt.Errorf("ensure table: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) ensureTable() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			candidate_id TEXT NOT NULL,
			platform TEXT NOT NULL,
			username TEXT NOT NULL,
			profile_url TEXT,
			rating INTEGER DEFAULT 0,
			problems_solved INTEGER DEFAULT 0,
			metadata JSONB,
			synced_at TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			PRIMARY KEY (candidate_id, platform)
		)
	`, s.tableName)

	_, err := s.db.Exec(query)
	return err
}

// Upsert writes one platform's stats for a candidate. A second sync
// for the same (candidate, platform) pair updates the existing row.
func (s *PostgresStore) Upsert(ctx context.Context, candidateID string, stats *domain.PlatformStats) error {
	metadata, err := json.Marshal(stats.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (
			candidate_id, platform, username, profile_url,
			rating, problems_solved, metadata, synced_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (candidate_id, platform) DO UPDATE SET
			username = EXCLUDED.username,
			profile_url = EXCLUDED.profile_url,
			rating = EXCLUDED.rating,
			problems_solved = EXCLUDED.problems_solved,
			metadata = EXCLUDED.metadata,
			synced_at = EXCLUDED.synced_at,
			updated_at = NOW()
	`, s.tableName)

	_, err = s.db.ExecContext(ctx, query,
		candidateID, string(stats.Platform), stats.Username, stats.ProfileURL,
		stats.Rating, stats.ProblemsSolved, metadata, stats.SyncedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stats: %w", err)
	}
	return nil
}

// ListByCandidate returns every stored platform row for a candidate
func (s *PostgresStore) ListByCandidate(ctx context.Context, candidateID string) ([]*domain.PlatformStats, error) {
	query := fmt.Sprintf(`
		SELECT platform, username, profile_url, rating, problems_solved, metadata, synced_at
		FROM %s
		WHERE candidate_id = $1
		ORDER BY platform
	`, s.tableName)

	rows, err := s.db.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var out []*domain.PlatformStats
	for rows.Next() {
		var stats domain.PlatformStats
		var metadata []byte
		if err := rows.Scan(
			&stats.Platform, &stats.Username, &stats.ProfileURL,
			&stats.Rating, &stats.ProblemsSolved, &metadata, &stats.SyncedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &stats.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal metadata: %w", err)
			}
		}
		out = append(out, &stats)
	}
	return out, rows.Err()
}

// Close closes the underlying connection pool
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
