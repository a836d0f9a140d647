// Package pipeline drives a conversion batch: validate the configuration,
// resolve file groups into logical recordings, extract them concurrently,
// and render the converted output files.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/seismoworks/smconv/internal/config"
	"github.com/seismoworks/smconv/internal/domain"
	"github.com/seismoworks/smconv/internal/extract"
	"github.com/seismoworks/smconv/internal/observability"
	"github.com/seismoworks/smconv/internal/render"
)

// ErrValidation is returned by Run when the configuration failed
// validation and no extraction was attempted.
var ErrValidation = errors.New("configuration validation failed")

// Stage names the pipeline stage a recording failed in.
type Stage string

const (
	StageExtract Stage = "extract"
	StageRender  Stage = "render"
)

// Result is the outcome of converting one logical recording.
type Result struct {
	Job        string
	Recording  int // index within the job's resolved recording order
	Waveform   *domain.Waveform
	OutputPath string
	Stage      Stage
	Err        error
}

// Summary aggregates everything a run produced, in deterministic order:
// recordings appear exactly as resolved from the configuration.
type Summary struct {
	RunID      string
	Violations []config.Violation
	Results    []Result
	Duration   time.Duration
}

// Converted counts successfully written recordings.
func (s *Summary) Converted() int {
	n := 0
	for _, r := range s.Results {
		if r.Err == nil {
			n++
		}
	}
	return n
}

// FailedStage reports whether any recording failed in the given stage.
func (s *Summary) FailedStage(stage Stage) bool {
	for _, r := range s.Results {
		if r.Err != nil && r.Stage == stage {
			return true
		}
	}
	return false
}

// Pipeline orchestrates one conversion batch.
type Pipeline struct {
	cfg     *config.Config
	outDir  string
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
	workers int
	runID   string
	ready   atomic.Bool
}

// New creates a Pipeline. workers bounds concurrent extractions per job;
// values below one are raised to one.
func New(cfg *config.Config, outDir string, logger *slog.Logger, metrics *observability.Metrics, workers int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		cfg:     cfg,
		outDir:  outDir,
		logger:  logger,
		metrics: metrics,
		clock:   clockwork.NewRealClock(),
		workers: workers,
		runID:   uuid.NewString(),
	}
}

// SetClock swaps the time source used for duration measurement. Tests use
// a fake clock for deterministic summaries.
func (p *Pipeline) SetClock(c clockwork.Clock) {
	p.clock = c
}

// RunID identifies this batch in log output.
func (p *Pipeline) RunID() string { return p.runID }

// CheckReadiness returns nil once the batch has started processing
// recordings, for the optional debug HTTP server.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("batch has not started processing recordings yet")
	}
	return nil
}

// Run executes the batch. Validation gates extraction: if the
// configuration has violations they are all reported and Run returns
// ErrValidation without touching any recording. Extraction and rendering
// failures are fail-soft per recording; the summary carries every result
// in resolved order.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	start := p.clock.Now()
	p.metrics.BatchRunning.Set(1)
	defer p.metrics.BatchRunning.Set(0)

	logger := p.logger.With("run_id", p.runID)
	sum := &Summary{RunID: p.runID}

	if violations := config.Validate(p.cfg); len(violations) > 0 {
		p.metrics.ValidationViolations.Add(float64(len(violations)))
		for i, v := range violations {
			logger.Error("validation violation", "index", i+1, "detail", v.String())
		}
		sum.Violations = violations
		sum.Duration = p.clock.Since(start)
		return sum, ErrValidation
	}
	logger.Debug("configuration valid", "conversions", len(p.cfg.Conversions))

	opts := extract.Options{NormalizeUnits: p.cfg.Global.Config.UnitConversion}
	for _, job := range p.cfg.Conversions {
		sum.Results = append(sum.Results, p.runJob(ctx, logger, job, opts)...)
	}

	sum.Duration = p.clock.Since(start)
	logger.Info("batch finished",
		"converted", sum.Converted(),
		"failed", len(sum.Results)-sum.Converted(),
		"duration", sum.Duration,
	)
	return sum, nil
}

// runJob converts one job's recordings with a bounded worker pool. Results
// land in an index-addressed slice so diagnostics and output ordering are
// identical across runs regardless of scheduling.
func (p *Pipeline) runJob(ctx context.Context, logger *slog.Logger, job config.Conversion, opts extract.Options) []Result {
	jobStart := p.clock.Now()
	rg := config.Resolve(job)
	results := make([]Result, len(rg.Recordings))

	workers := min(p.workers, len(rg.Recordings))
	if workers < 1 {
		workers = 1
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range indexes {
				results[idx] = p.processRecording(logger, job, idx, rg.Recordings[idx], opts)
			}
		}()
	}

	fed := 0
feed:
	for i := range rg.Recordings {
		select {
		case <-ctx.Done():
			break feed
		case indexes <- i:
			fed++
		}
	}
	close(indexes)
	wg.Wait()

	for i := fed; i < len(rg.Recordings); i++ {
		results[i] = Result{Job: job.Name, Recording: i, Stage: StageExtract, Err: ctx.Err()}
	}

	p.metrics.JobDuration.Observe(p.clock.Since(jobStart).Seconds())
	return results
}

func (p *Pipeline) processRecording(logger *slog.Logger, job config.Conversion, idx int, rec config.Recording, opts extract.Options) Result {
	p.ready.Store(true)
	res := Result{Job: job.Name, Recording: idx}

	w, err := extract.Recording(job.From, rec, opts)
	if err != nil {
		p.metrics.ExtractionErrors.Inc()
		logger.Warn("extraction failed",
			"job", job.Name, "recording", idx, "error", err)
		res.Stage = StageExtract
		res.Err = err
		return res
	}
	p.metrics.RecordingsExtracted.Inc()
	p.metrics.SamplesPerRecording.Observe(float64(w.SampleCount()))
	res.Waveform = w

	path, err := render.WriteFile(w, job.To, p.outDir)
	if err != nil {
		logger.Error("render failed",
			"job", job.Name, "recording", idx, "error", err)
		res.Stage = StageRender
		res.Err = err
		return res
	}
	p.metrics.FilesWritten.Inc()
	res.OutputPath = path

	logger.Info("recording converted",
		"job", job.Name,
		"recording", idx,
		"station", w.Meta.SiteCode,
		"samples", w.SampleCount(),
		"output", path,
	)
	return res
}
