package httpapi

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/postkeeper/internal/common"
	"github.com/dmitrijs2005/postkeeper/internal/logging"
	"github.com/dmitrijs2005/postkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/postkeeper/internal/server/storage"
)

const (
	StatusError    = "ERROR"
	StatusNotFound = "NOT-FOUND"
)

// Response is the body of every /set and /get answer.
type Response struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Val    string `json:"val"`
}

type handler struct {
	store          storage.Storage
	logger         logging.Logger
	metrics        *metrics.Metrics
	maxKeyLength   int
	maxValueLength int
}

func (h *handler) tooLong(key, value string) bool {
	if h.maxKeyLength > 0 && utf8.RuneCountInString(key) > h.maxKeyLength {
		return true
	}
	return h.maxValueLength > 0 && utf8.RuneCountInString(value) > h.maxValueLength
}

// set handles GET /set/:key/*value. An empty value is stored as-is.
func (h *handler) set(c *gin.Context) {
	key := c.Param("key")
	value := strings.TrimPrefix(c.Param("value"), "/")

	if h.tooLong(key, value) {
		c.JSON(http.StatusOK, Response{Status: common.StatusTooLong, Key: key})
		return
	}

	ctx := c.Request.Context()
	if err := h.store.Set(ctx, key, value); err != nil {
		h.metrics.RecordStorage("set", "error")
		h.logger.Error(ctx, "storage set failed", "key", key, "error", err.Error())
		c.JSON(http.StatusInternalServerError, Response{Status: StatusError, Key: key})
		return
	}
	h.metrics.RecordStorage("set", "ok")

	c.JSON(http.StatusOK, Response{Status: common.StatusSuccess, Key: key, Val: value})
}

// get handles GET /get/:key. A missing key answers SUCCESS with an empty val.
func (h *handler) get(c *gin.Context) {
	key := c.Param("key")
	ctx := c.Request.Context()

	value, ok, err := h.store.Get(ctx, key)
	if err != nil {
		h.metrics.RecordStorage("get", "error")
		h.logger.Error(ctx, "storage get failed", "key", key, "error", err.Error())
		c.JSON(http.StatusInternalServerError, Response{Status: StatusError, Key: key})
		return
	}

	if ok {
		h.metrics.RecordStorage("get", "ok")
	} else {
		h.metrics.RecordStorage("get", "miss")
	}

	c.JSON(http.StatusOK, Response{Status: common.StatusSuccess, Key: key, Val: value})
}
