// Package etl drives a load: it discovers input files, turns each one into
// star-schema rows and writes them to the store, one transaction per file.
package etl

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ademuri/sparkify-etl/internal/discover"
	"github.com/ademuri/sparkify-etl/internal/store"
)

// ProcessFunc loads one input file inside tx and reports what it submitted.
type ProcessFunc func(ctx context.Context, tx *store.Tx, path string) (FileStats, error)

type Options struct {
	Logger zerolog.Logger

	// Ext is the file extension to load. Default: .json
	Ext string

	// SkipMalformed logs and skips lines that aren't valid JSON instead of
	// failing the run.
	SkipMalformed bool

	// FilesPerSecond throttles file processing. Zero means unlimited.
	FilesPerSecond float64
}

// Loader runs loads against a single store. It keeps no state between
// calls; every count is returned to the caller.
type Loader struct {
	store         *store.Store
	log           zerolog.Logger
	ext           string
	skipMalformed bool
	limiter       *rate.Limiter
}

func NewLoader(s *store.Store, opts Options) *Loader {
	ext := opts.Ext
	if ext == "" {
		ext = ".json"
	}
	limit := rate.Inf
	if opts.FilesPerSecond > 0 {
		limit = rate.Limit(opts.FilesPerSecond)
	}
	return &Loader{
		store:         s,
		log:           opts.Logger,
		ext:           ext,
		skipMalformed: opts.SkipMalformed,
		limiter:       rate.NewLimiter(limit, 1),
	}
}

// Run loads every song file under songRoot, then every log file under
// logRoot. Songs go first so that log events can be matched against them.
// On error the summary holds what was committed before the failure.
func (l *Loader) Run(ctx context.Context, songRoot, logRoot string) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	log := l.log.With().Str("run_id", summary.RunID).Logger()
	ctx = log.WithContext(ctx)

	var err error
	summary.Songs, err = l.ProcessData(ctx, songRoot, l.ProcessSongFile)
	if err != nil {
		return summary, fmt.Errorf("loading song data: %w", err)
	}

	summary.Logs, err = l.ProcessData(ctx, logRoot, l.ProcessLogFile)
	if err != nil {
		return summary, fmt.Errorf("loading log data: %w", err)
	}

	summary.Stored, err = l.store.CountRows(ctx)
	if err != nil {
		return summary, err
	}

	log.Info().
		Int("time_rows", summary.TimeRows()).
		Int("songplay_rows", summary.SongPlayRows()).
		Msg("load complete")
	return summary, nil
}

// ProcessData applies fn to every matching file under root, committing
// after each file. A failing file is rolled back and stops the load.
func (l *Loader) ProcessData(ctx context.Context, root string, fn ProcessFunc) (PhaseSummary, error) {
	log := l.logger(ctx)
	phase := PhaseSummary{Root: root}

	files, err := discover.Files(root, l.ext)
	if err != nil {
		return phase, err
	}
	phase.Files = len(files)
	log.Info().Msgf("%d files found in %s", len(files), root)

	for i, path := range files {
		if err := l.limiter.Wait(ctx); err != nil {
			return phase, err
		}

		stats, err := l.processFile(ctx, path, fn)
		if err != nil {
			return phase, fmt.Errorf("processing %s: %w", path, err)
		}
		phase.add(stats)
		phase.Processed++

		log.Info().Msgf("%d/%d files processed.", i+1, len(files))
	}

	return phase, nil
}

func (l *Loader) processFile(ctx context.Context, path string, fn ProcessFunc) (FileStats, error) {
	tx, err := l.store.Begin(ctx)
	if err != nil {
		return FileStats{}, err
	}
	defer tx.Rollback()

	stats, err := fn(ctx, tx, path)
	if err != nil {
		return FileStats{}, err
	}

	if err := tx.Commit(); err != nil {
		return FileStats{}, err
	}
	return stats, nil
}

// logger prefers the run-scoped logger Run attaches to ctx.
func (l *Loader) logger(ctx context.Context) *zerolog.Logger {
	if log := zerolog.Ctx(ctx); log.GetLevel() != zerolog.Disabled {
		return log
	}
	return &l.log
}
