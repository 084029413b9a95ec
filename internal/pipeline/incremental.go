package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/costplan/internal/source"
	"github.com/theirongolddev/costplan/internal/store"
)

// CachedLoadResult extends LoadResult with cache metadata.
type CachedLoadResult struct {
	LoadResult
	CacheHits int
	Reparsed  int
	Pruned    int
}

// LoadWithCache discovers documents, diffs them against the cache by mtime
// and size, parses only changed files, and returns the combined result.
// Cache entries under dir for files that no longer exist are pruned; entries
// belonging to other portfolio directories are left alone.
func (e *Engine) LoadWithCache(ctx context.Context, dir string, cache *store.Cache, progressFn ProgressFunc) (*CachedLoadResult, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	files, err := source.ScanDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	result := &CachedLoadResult{
		LoadResult: LoadResult{TotalFiles: len(files)},
	}

	tracked, err := cache.GetTrackedFiles()
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	// Diff: partition into changed and unchanged
	var toReparse []source.DiscoveredFile
	var unchanged []string
	present := make(map[string]struct{}, len(files))

	for _, f := range files {
		present[f.Path] = struct{}{}
		info, err := os.Stat(f.Path)
		if err != nil {
			continue
		}

		cached, ok := tracked[f.Path]
		if ok && cached.MtimeNs == info.ModTime().UnixNano() && cached.SizeBytes == info.Size() {
			unchanged = append(unchanged, f.Path)
		} else {
			toReparse = append(toReparse, f)
		}
	}

	prefix := dir + string(filepath.Separator)
	for path := range tracked {
		if _, ok := present[path]; ok || !strings.HasPrefix(path, prefix) {
			continue
		}
		if err := cache.DeleteDocument(path); err != nil {
			e.Log.Warn("pruning cache entry", "path", path, "err", err)
			continue
		}
		result.Pruned++
	}

	result.CacheHits = len(unchanged)
	result.Reparsed = len(toReparse)

	if len(unchanged) > 0 {
		docs, err := cache.LoadDocuments()
		if err != nil {
			return nil, fmt.Errorf("loading cached documents: %w", err)
		}
		for _, path := range unchanged {
			doc, ok := docs[path]
			if !ok {
				continue
			}
			result.ParsedFiles++
			result.Projects = append(result.Projects, e.Summarize(relName(dir, path), doc.Data, e.ContingencyPercent))
		}
		if progressFn != nil {
			progressFn(result.CacheHits, result.TotalFiles)
		}
	}

	if len(toReparse) > 0 {
		results, err := parseAll(ctx, toReparse, progressFn, result.CacheHits, result.TotalFiles)
		if err != nil {
			return nil, err
		}

		for i, pr := range results {
			if pr.Err != nil {
				result.recordError(e, pr)
				continue
			}
			result.ParsedFiles++
			result.Projects = append(result.Projects, e.Summarize(relName(dir, pr.File.Path), pr.Data, e.ContingencyPercent))

			info, err := os.Stat(toReparse[i].Path)
			if err != nil {
				continue
			}
			doc := store.Document{Path: pr.File.Path, Format: string(pr.File.Format), Data: pr.Data}
			if err := cache.SaveDocument(doc, info.ModTime().UnixNano(), info.Size()); err != nil {
				e.Log.Warn("caching project file", "path", pr.File.Path, "err", err)
			}
		}
	}

	result.sortProjects()
	return result, nil
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "costplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "costplan")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "projects.db")
}
