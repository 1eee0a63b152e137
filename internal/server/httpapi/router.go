// Package httpapi exposes a storage.Storage over the keyval-compatible
// /set and /get HTTP API.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/postkeeper/internal/logging"
	"github.com/dmitrijs2005/postkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/postkeeper/internal/server/storage"
)

// Options configures the router. Zero limits disable the length check;
// a zero RateLimit disables rate limiting.
type Options struct {
	Storage        storage.Storage
	Logger         logging.Logger
	Metrics        *metrics.Metrics
	MaxKeyLength   int
	MaxValueLength int
	RateLimit      float64
	RateBurst      int
}

// NewRouter builds the gin engine serving /set, /get and /metrics.
//
// Path values are matched on the raw (escaped) path and unescaped afterwards,
// so keys and values may contain encoded slashes.
func NewRouter(opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	r := gin.New()
	r.UseRawPath = true
	r.UnescapePathValues = true

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogging(opts.Logger))
	r.Use(Instrument(opts.Metrics))

	if opts.RateLimit > 0 {
		limiter := NewRateLimiter(opts.RateLimit, opts.RateBurst, opts.Logger, opts.Metrics)
		r.Use(limiter.Handler())
	}

	h := &handler{
		store:          opts.Storage,
		logger:         opts.Logger,
		metrics:        opts.Metrics,
		maxKeyLength:   opts.MaxKeyLength,
		maxValueLength: opts.MaxValueLength,
	}

	r.GET("/set/:key/*value", h.set)
	r.GET("/get/:key", h.get)
	r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, Response{Status: StatusNotFound})
	})

	return r
}
