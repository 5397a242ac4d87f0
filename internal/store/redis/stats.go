// Package redis keeps optional diagnosis statistics: per-disease counters
// and a capped list of recent diagnoses. Every write is best effort; a Redis
// outage must never fail an analysis response.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/krishimitra/leafscan/internal/domain"
)

// RecentLimit caps the recent-diagnosis list.
const RecentLimit = 50

// Store handles Redis operations for diagnosis stats.
type Store struct {
	client *redis.Client
}

// NewStore creates a new stats store.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// RecentDiagnosis is one entry in the recent-diagnosis list.
type RecentDiagnosis struct {
	Disease          domain.DiseaseID `json:"disease"`
	Confidence       float64          `json:"confidence"`
	DetailedClass    string           `json:"detailed_class"`
	Synthetic        bool             `json:"synthetic"`
	ServiceReachable bool             `json:"service_reachable"`
	At               time.Time        `json:"at"`
}

// DiseaseStats aggregates counters for one disease identifier.
type DiseaseStats struct {
	Total     int64 `json:"total"`
	Synthetic int64 `json:"synthetic"`
}

// RecordDiagnosis increments the counters for the report's disease and
// prepends it to the recent list, trimming the list to RecentLimit.
func (s *Store) RecordDiagnosis(ctx context.Context, report *domain.Report) error {
	id := string(report.Result.DiseaseID)

	if err := s.client.Incr(ctx, CountKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to increment diagnosis counter: %w", err)
	}
	if report.Result.Synthetic {
		if err := s.client.Incr(ctx, SyntheticKey(id)).Err(); err != nil {
			return fmt.Errorf("failed to increment synthetic counter: %w", err)
		}
	}

	entry := RecentDiagnosis{
		Disease:          report.Result.DiseaseID,
		Confidence:       report.Result.Confidence,
		DetailedClass:    report.Result.DetailedClass,
		Synthetic:        report.Result.Synthetic,
		ServiceReachable: report.ServiceReachable,
		At:               time.Now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal recent diagnosis: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, KeyRecent, data)
	pipe.LTrim(ctx, KeyRecent, 0, RecentLimit-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update recent diagnoses: %w", err)
	}

	return nil
}

// GetStats returns counters for every identifier in the closed set plus any
// extra catalog ids passed in.
func (s *Store) GetStats(ctx context.Context, ids []domain.DiseaseID) (map[domain.DiseaseID]DiseaseStats, error) {
	stats := make(map[domain.DiseaseID]DiseaseStats, len(ids))

	for _, id := range ids {
		total, err := s.getCounter(ctx, CountKey(string(id)))
		if err != nil {
			return nil, err
		}
		synthetic, err := s.getCounter(ctx, SyntheticKey(string(id)))
		if err != nil {
			return nil, err
		}
		stats[id] = DiseaseStats{Total: total, Synthetic: synthetic}
	}

	return stats, nil
}

// RecentDiagnoses returns up to limit entries, newest first.
func (s *Store) RecentDiagnoses(ctx context.Context, limit int64) ([]RecentDiagnosis, error) {
	if limit <= 0 || limit > RecentLimit {
		limit = RecentLimit
	}

	raw, err := s.client.LRange(ctx, KeyRecent, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read recent diagnoses: %w", err)
	}

	entries := make([]RecentDiagnosis, 0, len(raw))
	for _, item := range raw {
		var entry RecentDiagnosis
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			// Skip entries written by an incompatible version.
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (s *Store) getCounter(ctx context.Context, key string) (int64, error) {
	val, err := s.client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read counter %s: %w", key, err)
	}
	return val, nil
}
