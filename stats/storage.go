// Package stats persists monthly usage counters for the audit service as a
// JSON file. Writes are batched through a background goroutine and land via
// an atomic temp-file rename.
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// MonthlyStats are the counters for one calendar month.
type MonthlyStats struct {
	Analyses    int       `json:"analyses"`
	CacheHits   int       `json:"cache_hits"`
	CacheMisses int       `json:"cache_misses"`
	FetchErrors int       `json:"fetch_errors"`
	LastUpdated time.Time `json:"last_updated"`
}

// Storage handles persistent storage of usage statistics.
type Storage struct {
	mutex       sync.RWMutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	stop        chan struct{}
	done        chan struct{}
}

// NewStorage creates a storage instance rooted at dataDir and loads any
// existing snapshot.
func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, "stats.json"),
		writeBuffer: make(chan struct{}, 1),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load stats: %w", err)
	}

	go s.backgroundWriter()

	return s, nil
}

func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	return json.Unmarshal(data, &s.stats)
}

func (s *Storage) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	// Write to a temp file first so readers never see a torn snapshot.
	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("write temporary file: %w", err)
	}
	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("rename temporary file: %w", err)
	}

	return nil
}

func (s *Storage) backgroundWriter() {
	defer close(s.done)
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.writeBuffer:
			if err := s.save(); err != nil {
				log.Warn().Err(err).Msg("stats save failed")
			}
		case <-ticker.C:
			if err := s.save(); err != nil {
				log.Warn().Err(err).Msg("stats save failed")
			}
		case <-s.stop:
			return
		}
	}
}

func currentMonth() string {
	return time.Now().Format("2006-01")
}

// requestWrite signals the background writer; a full buffer means a write
// is already pending.
func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
	}
}

// RecordAnalysis counts one completed analysis and whether it was served
// from cache.
func (s *Storage) RecordAnalysis(cacheHit bool) {
	s.mutex.Lock()
	month := s.monthLocked()
	month.Analyses++
	if cacheHit {
		month.CacheHits++
	} else {
		month.CacheMisses++
	}
	month.LastUpdated = time.Now()
	flush := time.Since(s.lastWrite) > time.Minute
	if flush {
		s.lastWrite = time.Now()
	}
	s.mutex.Unlock()

	if flush {
		s.requestWrite()
	}
}

// RecordFetchError counts one failed retrieval.
func (s *Storage) RecordFetchError() {
	s.mutex.Lock()
	month := s.monthLocked()
	month.FetchErrors++
	month.LastUpdated = time.Now()
	s.mutex.Unlock()
}

func (s *Storage) monthLocked() *MonthlyStats {
	key := currentMonth()
	month, ok := s.stats[key]
	if !ok {
		month = &MonthlyStats{}
		s.stats[key] = month
	}
	return month
}

// GetCurrentStats returns the counters for the current month.
func (s *Storage) GetCurrentStats() MonthlyStats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if month, ok := s.stats[currentMonth()]; ok {
		return *month
	}
	return MonthlyStats{}
}

// GetMonthlyStats returns the counters for a specific "YYYY-MM" month.
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if month, ok := s.stats[yearMonth]; ok {
		return *month, true
	}
	return MonthlyStats{}, false
}

// GetAllMonths returns every month with data, newest first.
func (s *Storage) GetAllMonths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := make([]string, 0, len(s.stats))
	for month := range s.stats {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// Cleanup drops everything except the current and previous month.
func (s *Storage) Cleanup() {
	now := time.Now()
	keep := map[string]struct{}{
		now.Format("2006-01"):                   {},
		now.AddDate(0, -1, 0).Format("2006-01"): {},
	}

	s.mutex.Lock()
	for key := range s.stats {
		if _, ok := keep[key]; !ok {
			delete(s.stats, key)
		}
	}
	s.mutex.Unlock()

	s.requestWrite()
}

// Shutdown stops the background writer and flushes a final snapshot.
func (s *Storage) Shutdown() error {
	close(s.stop)
	<-s.done
	return s.save()
}
