package algorithms

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/youstinus/ga-tests/pkg/genetic/framework"
)

const (
	// DefaultCacheExpiration drops chromosomes not seen for a while; lineages
	// that died out stop occupying memory.
	DefaultCacheExpiration = 5 * time.Minute
	// DefaultCacheMaxEntries caps the number of cached chromosomes.
	DefaultCacheMaxEntries = 100000

	cacheCleanupInterval = time.Minute
)

// CachedEvaluator memoizes an evaluator by chromosome. Elites and copied
// parents come back every generation, so their fitness is computed once.
type CachedEvaluator[G comparable] struct {
	evaluator  framework.Evaluator[G]
	cache      *cache.Cache
	maxEntries int

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCachedEvaluator wraps evaluator with the default expiration and size cap.
func NewCachedEvaluator[G comparable](evaluator framework.Evaluator[G]) *CachedEvaluator[G] {
	return NewBoundedCachedEvaluator(evaluator, DefaultCacheExpiration, DefaultCacheMaxEntries)
}

// NewBoundedCachedEvaluator wraps evaluator. Entries expire after expiration
// (cache.NoExpiration keeps them), and the cache is flushed whenever it holds
// maxEntries chromosomes. A maxEntries of 0 disables the cap.
func NewBoundedCachedEvaluator[G comparable](evaluator framework.Evaluator[G], expiration time.Duration, maxEntries int) *CachedEvaluator[G] {
	cleanup := cacheCleanupInterval
	if expiration == cache.NoExpiration {
		cleanup = 0
	}
	return &CachedEvaluator[G]{
		evaluator:  evaluator,
		cache:      cache.New(expiration, cleanup),
		maxEntries: maxEntries,
	}
}

// Evaluate returns the cached fitness of ind, computing it on a miss.
func (c *CachedEvaluator[G]) Evaluate(ind *framework.Individual[G]) float64 {
	key := chromosomeKey(ind)
	if v, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return v.(float64)
	}
	c.misses.Add(1)
	fitness := c.evaluator(ind)
	if c.maxEntries > 0 && c.cache.ItemCount() >= c.maxEntries {
		c.cache.Flush()
	}
	c.cache.Set(key, fitness, cache.DefaultExpiration)
	return fitness
}

// Evaluator returns Evaluate as a framework.Evaluator.
func (c *CachedEvaluator[G]) Evaluator() framework.Evaluator[G] {
	return c.Evaluate
}

func (c *CachedEvaluator[G]) Hits() int64 {
	return c.hits.Load()
}

func (c *CachedEvaluator[G]) Misses() int64 {
	return c.misses.Load()
}

// Len returns the number of cached chromosomes.
func (c *CachedEvaluator[G]) Len() int {
	return c.cache.ItemCount()
}

func (c *CachedEvaluator[G]) Flush() {
	c.cache.Flush()
}

func chromosomeKey[G comparable](ind *framework.Individual[G]) string {
	var sb strings.Builder
	for i, g := range ind.Chromosome() {
		if i > 0 {
			sb.WriteByte('|')
		}
		fmt.Fprintf(&sb, "%#v", g)
	}
	return sb.String()
}
