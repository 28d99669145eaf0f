// Package stats precomputes per-variant frequency statistics for the
// dashboard and caches them msgpack-encoded in the cache database. The
// snapshots are ephemeral and rebuilt by a scheduled job or on demand.
package stats

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/lottolab/internal/domain"
	"github.com/aristath/lottolab/internal/modules/pool"
)

// Snapshot is the cached statistics bundle for one variant.
type Snapshot struct {
	Variant       string                 `json:"variant" msgpack:"variant"`
	Draws         int                    `json:"draws" msgpack:"draws"`
	Frequencies   pool.Frequencies       `json:"frequencies" msgpack:"frequencies"`
	HotMain       []int                  `json:"hot_main" msgpack:"hot_main"`
	ColdMain      []int                  `json:"cold_main" msgpack:"cold_main"`
	HotSecondary  []int                  `json:"hot_secondary" msgpack:"hot_secondary"`
	ColdSecondary []int                  `json:"cold_secondary" msgpack:"cold_secondary"`
	Distribution  pool.DistributionStats `json:"distribution" msgpack:"distribution"`
	UpdatedAt     time.Time              `json:"updated_at" msgpack:"updated_at"`
}

// historyLoader supplies draw history, most-recent-first. Implemented by
// the draws repository.
type historyLoader interface {
	LoadHistory(variant string, limit int) ([]domain.Draw, error)
}

// Service computes and caches statistics snapshots.
type Service struct {
	cacheDB  *sql.DB
	registry *pool.Registry
	history  historyLoader
	log      zerolog.Logger
}

// NewService creates a stats service. history is typically the draws
// repository.
func NewService(cacheDB *sql.DB, registry *pool.Registry, history historyLoader, log zerolog.Logger) *Service {
	return &Service{
		cacheDB:  cacheDB,
		registry: registry,
		history:  history,
		log:      log.With().Str("service", "stats").Logger(),
	}
}

// Refresh recomputes the snapshot for one variant from the full stored
// history and writes it to the cache.
func (s *Service) Refresh(variantName string) (*Snapshot, error) {
	variant, err := s.registry.Get(variantName)
	if err != nil {
		return nil, err
	}

	history, err := s.history.LoadHistory(variant.Name, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for stats snapshot: %w", err)
	}

	freq := pool.FrequencyTable(variant, history)
	snapshot := &Snapshot{
		Variant:       variant.Name,
		Draws:         len(history),
		Frequencies:   freq,
		HotMain:       pool.MostFrequent(freq.Main, 10),
		ColdMain:      pool.LeastFrequent(freq.Main, 10),
		HotSecondary:  pool.MostFrequent(freq.Secondary, 5),
		ColdSecondary: pool.LeastFrequent(freq.Secondary, 5),
		Distribution:  pool.SumDistribution(history),
		UpdatedAt:     time.Now().UTC(),
	}

	payload, err := msgpack.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stats snapshot: %w", err)
	}

	_, err = s.cacheDB.Exec(`
		INSERT INTO stats_snapshots (variant, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(variant) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, snapshot.Variant, payload, snapshot.UpdatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to store stats snapshot: %w", err)
	}

	s.log.Debug().Str("variant", variant.Name).Int("draws", snapshot.Draws).Msg("Refreshed stats snapshot")
	return snapshot, nil
}

// RefreshAll recomputes snapshots for every registered variant. Used by the
// scheduled job; a failure on one variant does not stop the others.
func (s *Service) RefreshAll() error {
	var firstErr error
	for _, variant := range s.registry.List() {
		if _, err := s.Refresh(variant.Name); err != nil {
			s.log.Error().Err(err).Str("variant", variant.Name).Msg("Failed to refresh stats snapshot")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Get returns the cached snapshot for a variant, computing it on demand when
// the cache is empty.
func (s *Service) Get(variantName string) (*Snapshot, error) {
	if _, err := s.registry.Get(variantName); err != nil {
		return nil, err
	}

	var payload []byte
	err := s.cacheDB.QueryRow(
		"SELECT payload FROM stats_snapshots WHERE variant = ?", variantName).Scan(&payload)
	if err == sql.ErrNoRows {
		return s.Refresh(variantName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stats snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := msgpack.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode stats snapshot: %w", err)
	}
	return &snapshot, nil
}
