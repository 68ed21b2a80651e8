// Package batch processes whole directories of receipt files through the
// extraction pipeline with a bounded worker pool.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/receipt-extractor/constants"
	"github.com/joseph-ayodele/receipt-extractor/internal/entity"
	"github.com/joseph-ayodele/receipt-extractor/internal/pipeline"
)

// FileResult is the per-file outcome.
type FileResult struct {
	Path   string                   `json:"path"`
	Key    string                   `json:"key"` // document number, or filename stem when unset
	Result *entity.ExtractionResult `json:"result,omitempty"`
	Err    string                   `json:"error,omitempty"`
}

// DirStats summarizes a directory run.
type DirStats struct {
	Scanned   uint32 `json:"scanned"`
	Matched   uint32 `json:"matched"`
	Succeeded uint32 `json:"succeeded"`
	Failed    uint32 `json:"failed"`
}

// Envelope is the multi-file response shape: results keyed by document number.
type Envelope struct {
	Status  bool                               `json:"status"`
	Message string                             `json:"message"`
	Data    map[string]entity.ExtractionResult `json:"data"`
}

// Runner fans extraction of many files out over a bounded worker pool.
type Runner struct {
	Pipe    *pipeline.Pipeline
	Logger  *slog.Logger
	Workers int           // default 4
	Timeout time.Duration // per-file; default 3m
}

func NewRunner(pipe *pipeline.Pipeline, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{Pipe: pipe, Logger: logger, Workers: 4, Timeout: 3 * time.Minute}
}

// ProcessDirectory walks root, filters by the allowed extensions, skips hidden
// entries if requested, and extracts each match. Per-file failures are
// recorded, never aborting the run.
func (r *Runner) ProcessDirectory(ctx context.Context, root string, skipHidden bool) ([]FileResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, fmt.Errorf("root path is required")
	}
	batchID := uuid.New()

	var paths []string
	var stats DirStats
	var results []FileResult

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			results = append(results, FileResult{Path: path, Key: keyFor(path, nil), Err: walkErr.Error()})
			stats.Failed++
			return nil // continue walking
		}
		if skipHidden && isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !constants.IsAllowedExt(filepath.Ext(path)) {
			return nil
		}
		stats.Matched++
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, stats, err
	}

	r.Logger.Info("batch started", "batch_id", batchID, "root", root, "matched", stats.Matched)

	workers := r.Workers
	if workers <= 0 {
		workers = 4
	}
	jobs := make(chan string)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for path := range jobs {
				res := r.processOne(ctx, path)
				mu.Lock()
				results = append(results, res)
				if res.Err == "" {
					stats.Succeeded++
				} else {
					stats.Failed++
				}
				mu.Unlock()
			}
		}(i + 1)
	}

	for _, p := range paths {
		select {
		case jobs <- p:
		case <-ctx.Done():
			// stop feeding; in-flight files finish on their own deadline
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()

	r.Logger.Info("batch finished",
		"batch_id", batchID,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
	)
	return results, stats, nil
}

func (r *Runner) processOne(ctx context.Context, path string) FileResult {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}
	fctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := r.Pipe.Run(fctx, path)
	if err != nil {
		r.Logger.Error("batch file failed", "path", path, "error", err)
		return FileResult{Path: path, Key: keyFor(path, nil), Err: err.Error()}
	}
	return FileResult{Path: path, Key: keyFor(path, &res), Result: &res}
}

// BuildEnvelope shapes per-file results into the keyed multi-file response.
func BuildEnvelope(results []FileResult) Envelope {
	data := make(map[string]entity.ExtractionResult, len(results))
	processed := 0
	for _, fr := range results {
		if fr.Result == nil {
			continue
		}
		processed++
		key := fr.Key
		// duplicate document numbers across files keep both entries
		for i := 2; ; i++ {
			if _, taken := data[key]; !taken {
				break
			}
			key = fmt.Sprintf("%s-%d", fr.Key, i)
		}
		data[key] = *fr.Result
	}
	return Envelope{
		Status:  processed == len(results),
		Message: fmt.Sprintf("%d out of %d files processed", processed, len(results)),
		Data:    data,
	}
}

// keyFor prefers the parsed document number, falling back to the filename stem.
func keyFor(path string, res *entity.ExtractionResult) string {
	if res != nil && res.Document.DocumentNumber != nil && *res.Document.DocumentNumber != "" {
		return *res.Document.DocumentNumber
	}
	base := filepath.Base(path)
	if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" {
		return stem
	}
	return "UNKNOWN"
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
