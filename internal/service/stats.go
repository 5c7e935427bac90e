package service

import (
	"sync"
	"time"

	"lexai/internal/domain"
)

// statsCollector tracks per-request retrieval and generation durations for
// the admin stats endpoint.
type statsCollector struct {
	mu              sync.Mutex
	requests        int64
	lastRetrieval   time.Duration
	lastGeneration  time.Duration
	totalRetrieval  time.Duration
	totalGeneration time.Duration
}

func (c *statsCollector) observe(retrieval, generation time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests++
	c.lastRetrieval = retrieval
	c.lastGeneration = generation
	c.totalRetrieval += retrieval
	c.totalGeneration += generation
}

func (c *statsCollector) snapshot() domain.PipelineStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	stats := domain.PipelineStats{Requests: c.requests}
	if c.requests == 0 {
		return stats
	}
	stats.LastRetrievalSecs = secs(c.lastRetrieval)
	stats.LastGenerationSecs = secs(c.lastGeneration)
	stats.AvgRetrievalSecs = secs(c.totalRetrieval / time.Duration(c.requests))
	stats.AvgGenerationSecs = secs(c.totalGeneration / time.Duration(c.requests))
	return stats
}

func secs(d time.Duration) *float64 {
	v := d.Seconds()
	return &v
}
