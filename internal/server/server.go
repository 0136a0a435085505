// Package server exposes a tile.RecordReader over HTTP as "/tiles/{z}/{x}/{y}".
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/eak1mov/go-bundletiles/bundle"
	"github.com/eak1mov/go-bundletiles/bundle/spec"
	"github.com/eak1mov/go-bundletiles/tile"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"
)

type Server struct {
	reader   tile.RecordReader
	logger   *slog.Logger
	inFlight *semaphore.Weighted
}

// New returns a server reading tiles from reader with at most maxInFlight
// concurrent lookups.
func New(reader tile.RecordReader, logger *slog.Logger, maxInFlight int) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		reader:   reader,
		logger:   logger,
		inFlight: semaphore.NewWeighted(int64(max(maxInFlight, 1))),
	}
}

func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.logRequests)
	router.GET("/tiles/:z/:x/:y", s.handleTile)
	return router
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start))
}

func parseCoordinate(name, value string) (uint32, error) {
	v, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad %s value %q", name, value)
	}
	return uint32(v), nil
}

// parseTileID parses path parameters; y may carry a file extension ("7.png").
func parseTileID(c *gin.Context) (tile.ID, error) {
	z, err := parseCoordinate("z", c.Param("z"))
	if err != nil {
		return tile.ID{}, err
	}
	x, err := parseCoordinate("x", c.Param("x"))
	if err != nil {
		return tile.ID{}, err
	}
	yParam := c.Param("y")
	y, err := parseCoordinate("y", strings.TrimSuffix(yParam, path.Ext(yParam)))
	if err != nil {
		return tile.ID{}, err
	}
	return tile.ID{X: x, Y: y, Z: z}, nil
}

func (s *Server) handleTile(c *gin.Context) {
	tileID, err := parseTileID(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	if err := s.inFlight.Acquire(c.Request.Context(), 1); err != nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	record, err := s.reader.ReadRecord(tileID)
	s.inFlight.Release(1)

	switch {
	case errors.Is(err, bundle.ErrNotFound):
		c.String(http.StatusNotFound, "tile %v not found", tileID)
		return
	case err != nil:
		s.logger.Error("failed to read tile", "tile", tileID, "err", err)
		if errors.Is(err, spec.ErrInvalidLength) || errors.Is(err, bundle.ErrTruncated) {
			c.String(http.StatusInternalServerError, "corrupt tile %v", tileID)
			return
		}
		c.String(http.StatusInternalServerError, "failed to read tile %v", tileID)
		return
	}

	lastModified := record.LastModified.UTC().Truncate(time.Second)
	if since, err := http.ParseTime(c.GetHeader("If-Modified-Since")); err == nil && !lastModified.After(since) {
		c.Status(http.StatusNotModified)
		return
	}

	c.Header("Last-Modified", lastModified.Format(http.TimeFormat))
	c.Data(http.StatusOK, http.DetectContentType(record.Data), record.Data)
}
