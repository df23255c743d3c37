// Package service wraps the pure analysis pipeline with retrieval, result
// caching and usage accounting. It is the entry point the HTTP API and the
// CLI share.
package service

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pagelens/backend/analyzer"
	"github.com/pagelens/backend/fetch"
	"github.com/pagelens/backend/htmldoc"
	"github.com/pagelens/backend/stats"
)

type cacheEntry struct {
	result    *analyzer.AnalysisResult
	timestamp time.Time
}

// CacheStats describes the state of the result cache.
type CacheStats struct {
	Entries     int           `json:"entries"`
	Hits        int           `json:"hits"`
	Misses      int           `json:"misses"`
	TTL         time.Duration `json:"ttl"`
	MaxSize     int           `json:"maxSize"`
	LastCleanup time.Time     `json:"lastCleanup"`
}

// Service analyzes documents by URL or raw HTML, caching URL results.
type Service struct {
	fetcher *fetch.Fetcher
	stats   *stats.Storage

	cacheMutex      sync.RWMutex
	cache           map[string]cacheEntry
	cacheTTL        time.Duration
	maxCacheSize    int
	lastCleanup     time.Time
	cleanupInterval time.Duration
	stop            chan struct{}
}

// New creates a Service persisting usage statistics under dataDir.
func New(dataDir string) (*Service, error) {
	storage, err := stats.NewStorage(dataDir)
	if err != nil {
		return nil, fmt.Errorf("initialize stats storage: %w", err)
	}

	s := &Service{
		fetcher:         fetch.New(),
		stats:           storage,
		cache:           make(map[string]cacheEntry),
		cacheTTL:        30 * time.Minute,
		maxCacheSize:    1000,
		cleanupInterval: 5 * time.Minute,
		lastCleanup:     time.Now(),
		stop:            make(chan struct{}),
	}

	go s.periodicCleanup()

	return s, nil
}

// AnalyzeURL fetches and audits a document, serving repeat requests from
// the TTL cache.
func (s *Service) AnalyzeURL(ctx context.Context, rawURL string) (*analyzer.AnalysisResult, error) {
	key := cacheKey(rawURL)

	s.cacheMutex.RLock()
	if entry, found := s.cache[key]; found && time.Since(entry.timestamp) < s.cacheTTL {
		s.cacheMutex.RUnlock()
		s.stats.RecordAnalysis(true)
		return entry.result, nil
	}
	s.cacheMutex.RUnlock()

	page, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		s.stats.RecordFetchError()
		return nil, err
	}

	view, err := htmldoc.Parse(bytes.NewReader(page.HTML), page.FinalURL)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	result := analyzer.Analyze(view, page.FinalURL, page.FetchedAt)
	s.stats.RecordAnalysis(false)

	s.cacheMutex.Lock()
	s.cache[key] = cacheEntry{result: result, timestamp: time.Now()}
	s.cacheMutex.Unlock()

	log.Debug().Str("url", rawURL).Int("score", result.Score).Msg("analysis completed")

	return result, nil
}

// AnalyzeHTML audits raw markup against a base URL without caching; pasted
// documents have no stable identity to cache under.
func (s *Service) AnalyzeHTML(htmlText, baseURL string) (*analyzer.AnalysisResult, error) {
	view, err := htmldoc.ParseString(htmlText, baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	result := analyzer.Analyze(view, baseURL, time.Now().UTC())
	s.stats.RecordAnalysis(false)
	return result, nil
}

// IsCached reports whether a fresh result exists for the URL.
func (s *Service) IsCached(rawURL string) bool {
	s.cacheMutex.RLock()
	defer s.cacheMutex.RUnlock()

	entry, found := s.cache[cacheKey(rawURL)]
	return found && time.Since(entry.timestamp) < s.cacheTTL
}

// SetCacheTTL adjusts how long results stay fresh.
func (s *Service) SetCacheTTL(ttl time.Duration) {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()
	s.cacheTTL = ttl
}

// SetMaxCacheSize caps the number of cached results.
func (s *Service) SetMaxCacheSize(size int) {
	s.cacheMutex.Lock()
	s.maxCacheSize = size
	s.cacheMutex.Unlock()
	s.cleanup()
}

// ClearCache drops every cached result.
func (s *Service) ClearCache() {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()
	s.cache = make(map[string]cacheEntry)
}

// CacheStats returns the cache state plus the month's hit/miss counters.
func (s *Service) CacheStats() CacheStats {
	current := s.stats.GetCurrentStats()

	s.cacheMutex.RLock()
	defer s.cacheMutex.RUnlock()

	return CacheStats{
		Entries:     len(s.cache),
		Hits:        current.CacheHits,
		Misses:      current.CacheMisses,
		TTL:         s.cacheTTL,
		MaxSize:     s.maxCacheSize,
		LastCleanup: s.lastCleanup,
	}
}

// Stats exposes the usage storage for the statistics endpoint.
func (s *Service) Stats() *stats.Storage {
	return s.stats
}

func (s *Service) periodicCleanup() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stop:
			return
		}
	}
}

// cleanup removes expired entries, then evicts oldest-first down to the
// size cap.
func (s *Service) cleanup() {
	now := time.Now()

	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()

	for key, entry := range s.cache {
		if now.Sub(entry.timestamp) > s.cacheTTL {
			delete(s.cache, key)
		}
	}

	if len(s.cache) > s.maxCacheSize {
		type aged struct {
			key       string
			timestamp time.Time
		}
		entries := make([]aged, 0, len(s.cache))
		for key, entry := range s.cache {
			entries = append(entries, aged{key, entry.timestamp})
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].timestamp.Before(entries[j].timestamp)
		})
		for i := 0; i < len(entries)-s.maxCacheSize; i++ {
			delete(s.cache, entries[i].key)
		}
	}

	s.lastCleanup = now
}

// Shutdown stops the cleanup goroutine and flushes statistics.
func (s *Service) Shutdown() error {
	close(s.stop)

	if err := s.stats.Shutdown(); err != nil {
		return fmt.Errorf("shutdown stats storage: %w", err)
	}

	s.cacheMutex.Lock()
	s.cache = nil
	s.cacheMutex.Unlock()

	return nil
}

func cacheKey(rawURL string) string {
	hash := md5.Sum([]byte(rawURL))
	return hex.EncodeToString(hash[:])
}
