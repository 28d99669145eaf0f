// Package draws provides the persistence layer for historical draw records
// and generated combinations.
package draws

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/aristath/lottolab/internal/domain"
	"github.com/aristath/lottolab/internal/modules/pool"
)

// dateLayout is the draw_date storage format. Lexicographic order matches
// chronological order, so ORDER BY works on the raw column.
const dateLayout = "2006-01-02"

// Repository handles historical draw storage in history.db. Ingestion
// validates every record against the variant's ranges; out-of-range records
// are quarantined with a reason instead of being clamped or inserted.
type Repository struct {
	db       *sql.DB
	registry *pool.Registry
	log      zerolog.Logger
}

// NewRepository creates a draw repository.
func NewRepository(db *sql.DB, registry *pool.Registry, log zerolog.Logger) *Repository {
	return &Repository{
		db:       db,
		registry: registry,
		log:      log.With().Str("repository", "draws").Logger(),
	}
}

// AddResult reports what happened to one ingested draw.
type AddResult struct {
	Stored      bool     `json:"stored"`
	Quarantined bool     `json:"quarantined"`
	Violations  []string `json:"violations,omitempty"`
}

// Add ingests one historical draw. Invalid records (wrong cardinality,
// out-of-range numbers, duplicates within a set, missing date) go to the
// quarantine table and are reported as such; they never reach the draws
// table. A second draw for the same (variant, date) is rejected with
// ErrDuplicateDraw.
func (r *Repository) Add(d domain.Draw) (AddResult, error) {
	variant, err := r.registry.Get(d.Variant)
	if err != nil {
		return AddResult{}, err
	}

	if result := domain.ValidateDraw(d, variant); !result.Valid() {
		if err := r.quarantine(d, result.Violations); err != nil {
			return AddResult{}, err
		}
		r.log.Warn().
			Str("variant", d.Variant).
			Strs("violations", result.Violations).
			Msg("Quarantined invalid draw record")
		return AddResult{Quarantined: true, Violations: result.Violations}, nil
	}

	mainJSON, secondaryJSON, err := encodeNumberSets(d.MainNumbers, d.SecondaryNumbers)
	if err != nil {
		return AddResult{}, err
	}

	_, err = r.db.Exec(`
		INSERT INTO draws (variant, draw_date, main_numbers, secondary_numbers, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, d.Variant, d.Date.Format(dateLayout), mainJSON, secondaryJSON, time.Now().Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return AddResult{}, fmt.Errorf("%w: %s already has a draw on %s",
				domain.ErrDuplicateDraw, d.Variant, d.Date.Format(dateLayout))
		}
		return AddResult{}, fmt.Errorf("failed to insert draw for %s on %s: %w",
			d.Variant, d.Date.Format(dateLayout), err)
	}
	return AddResult{Stored: true}, nil
}

// isUniqueViolation reports whether err is the driver's UNIQUE-constraint
// error; the only unique constraint on the draws table is (variant, draw_date).
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT
}

// LoadHistory returns up to limit draws for a variant, ordered
// most-recent-first. A limit <= 0 returns the full history.
func (r *Repository) LoadHistory(variantName string, limit int) ([]domain.Draw, error) {
	if _, err := r.registry.Get(variantName); err != nil {
		return nil, err
	}

	query := `
		SELECT id, variant, draw_date, main_numbers, secondary_numbers
		FROM draws
		WHERE variant = ?
		ORDER BY draw_date DESC
	`
	args := []interface{}{variantName}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query draw history for %s: %w", variantName, err)
	}
	defer rows.Close()

	var history []domain.Draw
	for rows.Next() {
		var (
			d             domain.Draw
			dateStr       string
			mainJSON      string
			secondaryJSON string
		)
		if err := rows.Scan(&d.ID, &d.Variant, &dateStr, &mainJSON, &secondaryJSON); err != nil {
			return nil, fmt.Errorf("failed to scan draw row: %w", err)
		}
		d.Date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid draw date %q in database: %w", dateStr, err)
		}
		if d.MainNumbers, d.SecondaryNumbers, err = decodeNumberSets(mainJSON, secondaryJSON); err != nil {
			return nil, err
		}
		history = append(history, d)
	}
	return history, rows.Err()
}

// QuarantineCount returns the number of quarantined records for a variant.
func (r *Repository) QuarantineCount(variantName string) (int, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM quarantined_draws WHERE variant = ?", variantName).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count quarantined draws: %w", err)
	}
	return count, nil
}

// PurgeQuarantine deletes quarantined records older than the retention
// window. Called by the daily cleanup job.
func (r *Repository) PurgeQuarantine(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).Unix()
	result, err := r.db.Exec("DELETE FROM quarantined_draws WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge quarantined draws: %w", err)
	}
	return result.RowsAffected()
}

func (r *Repository) quarantine(d domain.Draw, violations []string) error {
	mainJSON, secondaryJSON, err := encodeNumberSets(d.MainNumbers, d.SecondaryNumbers)
	if err != nil {
		return err
	}
	reasonJSON, err := json.Marshal(violations)
	if err != nil {
		return fmt.Errorf("failed to encode quarantine reason: %w", err)
	}

	dateStr := ""
	if !d.Date.IsZero() {
		dateStr = d.Date.Format(dateLayout)
	}

	_, err = r.db.Exec(`
		INSERT INTO quarantined_draws (variant, draw_date, main_numbers, secondary_numbers, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, d.Variant, dateStr, mainJSON, secondaryJSON, string(reasonJSON), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to quarantine draw: %w", err)
	}
	return nil
}

func encodeNumberSets(main, secondary []int) (string, string, error) {
	mainJSON, err := json.Marshal(main)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode main numbers: %w", err)
	}
	secondaryJSON, err := json.Marshal(secondary)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode secondary numbers: %w", err)
	}
	return string(mainJSON), string(secondaryJSON), nil
}

func decodeNumberSets(mainJSON, secondaryJSON string) ([]int, []int, error) {
	var main, secondary []int
	if err := json.Unmarshal([]byte(mainJSON), &main); err != nil {
		return nil, nil, fmt.Errorf("failed to decode main numbers: %w", err)
	}
	if err := json.Unmarshal([]byte(secondaryJSON), &secondary); err != nil {
		return nil, nil, fmt.Errorf("failed to decode secondary numbers: %w", err)
	}
	return main, secondary, nil
}
