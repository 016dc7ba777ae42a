// Package batch discovers subtitle files in a directory and processes
// them with a bounded worker pool. Runs over different files share no
// state, so workers need no coordination beyond the pool itself; a file
// lock keeps two batch invocations from racing over the same tree.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"subfix/internal/logging"
)

// Options configures a batch run.
type Options struct {
	Workers int
}

// FileResult is the outcome for one file.
type FileResult struct {
	File           string
	Language       string
	TotalBlocks    int
	Violations     int
	ComplianceRate float64
	Err            error
}

// Summary aggregates a whole run.
type Summary struct {
	Processed       int
	Failed          int
	TotalViolations int
	Results         []FileResult
}

// Discover lists .srt files directly under dir, skipping names that carry
// one of the given suffixes (previous outputs and violation reports).
// Results are sorted for deterministic processing order.
func Discover(dir string, skipSuffixes []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".srt") {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if hasAnySuffix(stem, skipSuffixes) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

func hasAnySuffix(stem string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if suffix != "" && strings.HasSuffix(stem, suffix) {
			return true
		}
	}
	return false
}

// Lock guards a batch run against concurrent invocations.
type Lock struct {
	path  string
	flock *flock.Flock
}

// NewLock prepares a lock at path, creating parent directories.
func NewLock(path string) (*Lock, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure lock directory: %w", err)
		}
	}
	return &Lock{path: path, flock: flock.New(path)}, nil
}

// Acquire takes the lock, failing immediately when another batch holds it.
func (l *Lock) Acquire() error {
	ok, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another batch run is already in progress")
	}
	return nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	return l.flock.Unlock()
}

// ProcessFunc handles one file and reports its outcome.
type ProcessFunc func(ctx context.Context, file string) FileResult

// Run fans files out to a bounded worker pool and collects a summary.
// Results keep the discovery order regardless of completion order.
func Run(ctx context.Context, logger *slog.Logger, files []string, opts Options, fn ProcessFunc) Summary {
	if logger == nil {
		logger = logging.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	results := make([]FileResult, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = fn(ctx, files[idx])
			}
		}()
	}

	for i := range files {
		select {
		case <-ctx.Done():
			for j := i; j < len(files); j++ {
				results[j] = FileResult{File: files[j], Err: ctx.Err()}
			}
			close(jobs)
			wg.Wait()
			return summarize(results)
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	summary := summarize(results)
	logger.Info("batch complete",
		logging.Int("processed", summary.Processed),
		logging.Int("failed", summary.Failed),
		logging.Int(logging.FieldViolations, summary.TotalViolations))
	return summary
}

func summarize(results []FileResult) Summary {
	summary := Summary{Results: results}
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Processed++
		summary.TotalViolations += r.Violations
	}
	return summary
}
