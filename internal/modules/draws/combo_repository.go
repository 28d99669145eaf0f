package draws

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/lottolab/internal/domain"
)

// ComboRepository persists generated combinations in combinations.db.
type ComboRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewComboRepository creates a generated-combination repository.
func NewComboRepository(db *sql.DB, log zerolog.Logger) *ComboRepository {
	return &ComboRepository{
		db:  db,
		log: log.With().Str("repository", "combinations").Logger(),
	}
}

// SaveBatch stores all combinations of one generation call in a single
// transaction, so a batch is either fully persisted or not at all.
func (r *ComboRepository) SaveBatch(combinations []domain.Combination) error {
	if len(combinations) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin batch transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO generated_combinations
			(id, batch_id, variant, strategy, main_numbers, secondary_numbers, score, rationale, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare combination insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range combinations {
		mainJSON, secondaryJSON, err := encodeNumberSets(c.MainNumbers, c.SecondaryNumbers)
		if err != nil {
			return err
		}
		createdAt := c.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		if _, err := stmt.Exec(c.ID, c.BatchID, c.Variant, c.Strategy,
			mainJSON, secondaryJSON, c.Score, c.Rationale, createdAt.Unix()); err != nil {
			return fmt.Errorf("failed to insert combination %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit combination batch: %w", err)
	}
	return nil
}

// ListFilter narrows a combination listing.
type ListFilter struct {
	Variant  string
	Strategy string
	Limit    int // defaults to 100
}

// List returns stored combinations, newest first.
func (r *ComboRepository) List(filter ListFilter) ([]domain.Combination, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, batch_id, variant, strategy, main_numbers, secondary_numbers, score, rationale, created_at
		FROM generated_combinations
		WHERE 1=1
	`
	var args []interface{}
	if filter.Variant != "" {
		query += " AND variant = ?"
		args = append(args, filter.Variant)
	}
	if filter.Strategy != "" {
		query += " AND strategy = ?"
		args = append(args, filter.Strategy)
	}
	query += " ORDER BY created_at DESC, id LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query combinations: %w", err)
	}
	defer rows.Close()

	var out []domain.Combination
	for rows.Next() {
		var (
			c             domain.Combination
			mainJSON      string
			secondaryJSON string
			createdAt     int64
		)
		if err := rows.Scan(&c.ID, &c.BatchID, &c.Variant, &c.Strategy,
			&mainJSON, &secondaryJSON, &c.Score, &c.Rationale, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan combination row: %w", err)
		}
		if c.MainNumbers, c.SecondaryNumbers, err = decodeNumberSets(mainJSON, secondaryJSON); err != nil {
			return nil, err
		}
		c.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, c)
	}
	return out, rows.Err()
}

// RecentMainKeys returns the canonical main-number keys of the most recent
// stored combinations for a variant. The dashboard uses this to build its
// exclusion set when regenerating against the same history.
func (r *ComboRepository) RecentMainKeys(variant string, limit int) ([]string, error) {
	combos, err := r.List(ListFilter{Variant: variant, Limit: limit})
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(combos))
	for i, c := range combos {
		keys[i] = c.MainKey()
	}
	return keys, nil
}
