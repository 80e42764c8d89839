package handler

import (
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

type page struct {
	Limit  int
	Offset int
}

// parsePage reads limit and offset. Bad values fall back to defaults and an
// oversized limit is clamped; neither is a client error.
func parsePage(c *gin.Context) page {
	p := page{
		Limit:  queryInt(c, "limit", defaultHistoryLimit),
		Offset: queryInt(c, "offset", 0),
	}
	if p.Limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", p.Limit, "default", defaultHistoryLimit)
		p.Limit = defaultHistoryLimit
	} else if p.Limit > maxHistoryLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", p.Limit, "max", maxHistoryLimit)
		p.Limit = maxHistoryLimit
	}
	if p.Offset < 0 {
		slog.Warn("invalid query parameter, using default", "param", "offset", "value", p.Offset, "default", 0)
		p.Offset = 0
	}
	return p
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", raw, "error", err)
		return fallback
	}
	return n
}
