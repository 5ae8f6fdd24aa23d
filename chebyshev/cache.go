// Package chebyshev implements the Chebyshev polynomials of the first kind
// and the economization (degree reduction) of polynomials with them.
package chebyshev

import (
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/numerics/economize/utils/bignum"
)

// ErrInvalidArgument is returned when a degree is negative.
var ErrInvalidArgument = errors.New("chebyshev: invalid argument")

// Cache memoizes the Chebyshev polynomials of the first kind T_n.
//
// The cache is seeded with T_0 = 1 and T_1 = x and is append-only: it grows
// monotonically as higher degrees are requested and each T_k is computed at
// most once over the lifetime of the cache. A Cache is safe for concurrent use.
type Cache struct {
	mu     sync.RWMutex
	polys  []bignum.Polynomial
	logger *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger of the Cache.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCache creates a new Cache holding T_0 and T_1.
func NewCache(opts ...Option) (c *Cache) {
	c = &Cache{
		polys: []bignum.Polynomial{
			bignum.Constant(big.NewRat(1, 1)),
			bignum.X(),
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return
}

var (
	defaultCache     *Cache
	defaultCacheOnce sync.Once
)

// Default returns the process-wide Cache.
func Default() *Cache {
	defaultCacheOnce.Do(func() {
		defaultCache = NewCache()
	})
	return defaultCache
}

// Len returns the number of cached polynomials.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.polys)
}

// Get returns T_n, the n-th Chebyshev polynomial of the first kind:
//
//	T_0 = 1, T_1 = x, T_n = 2x * T_{n-1} - T_{n-2}.
//
// Missing degrees up to n are computed in increasing order and appended to the cache.
func (c *Cache) Get(n int) (bignum.Polynomial, error) {

	if n < 0 {
		return bignum.Polynomial{}, fmt.Errorf("%w: degree %d of a Chebyshev polynomial must be non-negative", ErrInvalidArgument, n)
	}

	c.mu.RLock()
	if n < len(c.polys) {
		p := c.polys[n]
		c.mu.RUnlock()
		c.logger.Debug("returning cached Chebyshev polynomial", "degree", n)
		return p, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	two := big.NewRat(2, 1)

	// Another caller may have grown the cache between the two locks.
	for k := len(c.polys); k <= n; k++ {
		tn := c.polys[k-1].MulX().MulScalar(two).Sub(c.polys[k-2])
		c.polys = append(c.polys, tn)
		c.logger.Debug("caching Chebyshev polynomial", "degree", k)
	}

	return c.polys[n], nil
}

// GetNormalised returns T_n divided by its leading coefficient.
// The result is recomputed at each call.
func (c *Cache) GetNormalised(n int) (bignum.Polynomial, error) {
	tn, err := c.Get(n)
	if err != nil {
		return bignum.Polynomial{}, err
	}
	return tn.Normalise(), nil
}
