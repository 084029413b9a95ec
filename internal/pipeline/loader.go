package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/costplan/internal/model"
	"github.com/theirongolddev/costplan/internal/source"
)

// LoadResult holds the output of the portfolio loading pipeline.
type LoadResult struct {
	Projects    []model.PortfolioProject
	TotalFiles  int
	ParsedFiles int
	FileErrors  int
	Errors      []error
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Load discovers and parses every project document in dir and summarizes
// each into a portfolio project. Files that fail to parse are counted and
// reported in Errors; they never abort the load.
func (e *Engine) Load(ctx context.Context, dir string, progressFn ProgressFunc) (*LoadResult, error) {
	files, err := source.ScanDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	result := &LoadResult{TotalFiles: len(files)}
	if len(files) == 0 {
		return result, nil
	}

	results, err := parseAll(ctx, files, progressFn, 0, len(files))
	if err != nil {
		return nil, err
	}

	for _, pr := range results {
		if pr.Err != nil {
			result.recordError(e, pr)
			continue
		}
		result.ParsedFiles++
		result.Projects = append(result.Projects, e.Summarize(relName(dir, pr.File.Path), pr.Data, e.ContingencyPercent))
	}
	result.sortProjects()
	return result, nil
}

// parseAll parses files on a bounded worker pool. Progress is reported as
// offset+processed out of total.
func parseAll(ctx context.Context, files []source.DiscoveredFile, progressFn ProgressFunc, offset, total int) ([]source.ParseResult, error) {
	results := make([]source.ParseResult, len(files))
	var processed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(runtime.GOMAXPROCS(0), 1))

	for i := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = source.ParseFile(files[i])
			n := processed.Add(1)
			if progressFn != nil {
				progressFn(offset+int(n), total)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parsing project files: %w", err)
	}
	return results, nil
}

// relName names a document by its slash-separated path under dir, so
// same-named files in different subdirectories stay distinct.
func relName(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

func (r *LoadResult) recordError(e *Engine, pr source.ParseResult) {
	r.FileErrors++
	r.Errors = append(r.Errors, pr.Err)
	e.Log.Warn("skipping project file", "path", pr.File.Path, "err", pr.Err)
}

// sortProjects orders projects by file name so results do not depend on
// worker scheduling.
func (r *LoadResult) sortProjects() {
	sort.Slice(r.Projects, func(i, j int) bool {
		return r.Projects[i].FileName < r.Projects[j].FileName
	})
}
