// Package server exposes the extraction pipeline over HTTP.
package server

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/receipt-extractor/constants"
	"github.com/joseph-ayodele/receipt-extractor/internal/batch"
	"github.com/joseph-ayodele/receipt-extractor/internal/common"
	"github.com/joseph-ayodele/receipt-extractor/internal/pipeline"
	"github.com/joseph-ayodele/receipt-extractor/internal/stats"
)

// Server wires the HTTP handlers to the pipeline and supporting stores.
type Server struct {
	pipe      *pipeline.Pipeline
	stats     *stats.Store
	logger    *slog.Logger
	uploadDir string
	maxUpload int64
}

func New(pipe *pipeline.Pipeline, statsStore *stats.Store, cfg common.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		pipe:      pipe,
		stats:     statsStore,
		logger:    logger,
		uploadDir: cfg.UploadDir,
		maxUpload: cfg.MaxUploadBytes,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLog())
	r.Use(cors())
	if s.maxUpload > 0 {
		r.MaxMultipartMemory = s.maxUpload
	}

	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api")
	{
		api.POST("/extract", s.handleExtract)
		api.POST("/extract/batch", s.handleExtractBatch)
		api.GET("/stats", s.handleStats)
	}
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleExtract accepts one multipart file under the "file" field and returns
// the extraction result for it.
func (s *Server) handleExtract(c *gin.Context) {
	if s.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		s.fail(c, common.NewAppError("MISSING_FILE", "multipart field 'file' is required", common.ErrInvalidInput))
		return
	}

	ext := constants.NormalizeExt(filepath.Ext(fileHeader.Filename))
	if !constants.IsAllowedExt(ext) {
		s.fail(c, common.NewAppError("UNSUPPORTED_FORMAT", "unsupported file extension "+ext, common.ErrUnsupportedFormat))
		return
	}

	path, cleanup, err := s.saveUpload(c, fileHeader, ext)
	if err != nil {
		s.fail(c, common.WrapError(err, "save upload"))
		return
	}
	defer cleanup()

	result, err := s.pipe.Run(c.Request.Context(), path)
	s.record(err == nil)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "1 out of 1 files processed",
		"data":    result,
	})
}

// handleExtractBatch accepts multiple files under the "files" field and
// returns results keyed by document number.
func (s *Server) handleExtractBatch(c *gin.Context) {
	if s.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload)
	}

	form, err := c.MultipartForm()
	if err != nil {
		s.fail(c, common.NewAppError("BAD_MULTIPART", "could not read multipart form", common.ErrInvalidInput))
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	if len(files) == 0 {
		s.fail(c, common.NewAppError("MISSING_FILE", "multipart field 'files' is required", common.ErrInvalidInput))
		return
	}

	results := make([]batch.FileResult, 0, len(files))
	for _, fh := range files {
		ext := constants.NormalizeExt(filepath.Ext(fh.Filename))
		if !constants.IsAllowedExt(ext) {
			results = append(results, batch.FileResult{
				Path: fh.Filename,
				Key:  strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename)),
				Err:  common.ErrUnsupportedFormat.Error(),
			})
			s.record(false)
			continue
		}

		path, cleanup, err := s.saveUpload(c, fh, ext)
		if err != nil {
			results = append(results, batch.FileResult{Path: fh.Filename, Err: err.Error()})
			s.record(false)
			continue
		}

		res, err := s.pipe.Run(c.Request.Context(), path)
		cleanup()
		s.record(err == nil)
		if err != nil {
			s.logger.Error("batch upload failed", "filename", fh.Filename, "error", err)
			results = append(results, batch.FileResult{Path: fh.Filename, Err: err.Error()})
			continue
		}

		key := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
		if res.Document.DocumentNumber != nil && *res.Document.DocumentNumber != "" {
			key = *res.Document.DocumentNumber
		}
		results = append(results, batch.FileResult{Path: fh.Filename, Key: key, Result: &res})
	}

	env := batch.BuildEnvelope(results)
	status := http.StatusOK
	if !env.Status && len(env.Data) == 0 {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, env)
}

func (s *Server) handleStats(c *gin.Context) {
	if s.stats == nil {
		c.JSON(http.StatusOK, gin.H{"status": true, "data": stats.Counters{}})
		return
	}
	counters, err := s.stats.Snapshot(c.Request.Context())
	if err != nil {
		s.fail(c, common.WrapError(err, "read stats"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "data": counters})
}

// saveUpload persists the multipart file to the upload dir (or a temp dir)
// and returns its path with a cleanup func.
func (s *Server) saveUpload(c *gin.Context, fh *multipart.FileHeader, ext string) (string, func(), error) {
	dir := s.uploadDir
	if dir == "" {
		dir = os.TempDir()
	}
	name := uuid.New().String() + "." + ext
	path := filepath.Join(dir, name)
	if err := c.SaveUploadedFile(fh, path); err != nil {
		return "", nil, err
	}
	return path, func() {
		if err := os.Remove(path); err != nil {
			s.logger.Warn("upload cleanup failed", "path", path, "error", err)
		}
	}, nil
}

func (s *Server) record(success bool) {
	if s.stats != nil {
		s.stats.RecordAsync(success)
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := common.HTTPStatus(err)
	s.logger.Error("request failed", "status", status, "error", err)
	c.JSON(status, gin.H{"status": false, "message": err.Error()})
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := uuid.New().String()
		c.Header("X-Request-ID", reqID)
		c.Next()
		s.logger.Info("request",
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}

// cors allows browser clients on other origins to call the API.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
