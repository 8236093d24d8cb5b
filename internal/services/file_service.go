package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"docstitch/internal/cost"
	"docstitch/internal/display"
	"docstitch/internal/events"
	"docstitch/internal/llm/client"
	"docstitch/internal/patch"
	"docstitch/internal/pysrc"
	"docstitch/internal/taskboard"
)

// Generator is the text-generation capability the coordinator fans out to.
type Generator interface {
	GenerateDocstring(ctx context.Context, functionName, functionSource string) (text string, actualCost float64, err error)
}

// FileState tracks where a file is in its processing lifecycle.
type FileState string

const (
	FileParsed         FileState = "PARSED"
	FileDispatched     FileState = "DISPATCHED"
	FileCollecting     FileState = "COLLECTING"
	FilePatching       FileState = "PATCHING"
	FileWritten        FileState = "WRITTEN"
	FileSkipped        FileState = "SKIPPED"
	FileDryRunComplete FileState = "DRY_RUN_COMPLETE"
)

// FileService processes one file end to end: parse, dispatch one generation
// task per undocumented function, collect completions, patch, write.
//
// Concurrency contract: workers only read the immutable file snapshot and
// send a result over the channel. The board, the patch set and the ledger are
// mutated exclusively on the coordinating goroutine as it consumes results in
// completion order, so none of them need locks. The file is written at most
// once, after every task is terminal.
type FileService struct {
	generator Generator
	estimator *cost.Estimator
	reporter  display.Reporter
	workers   int
	dryRun    bool
}

func NewFileService(generator Generator, estimator *cost.Estimator, reporter display.Reporter, workers int, dryRun bool) *FileService {
	return &FileService{
		generator: generator,
		estimator: estimator,
		reporter:  reporter,
		workers:   workers,
		dryRun:    dryRun,
	}
}

// taskResult is what a worker hands back to the coordinator. Exactly one is
// produced per dispatched task, whatever the outcome.
type taskResult struct {
	function string
	text     string
	cost     float64
	err      error
}

// ProcessFile runs the per-file state machine and returns the file's total
// cost. Errors are file-level failures; the caller keeps scanning.
func (s *FileService) ProcessFile(ctx context.Context, path string) (float64, error) {
	ctx = events.WithFile(ctx, path)
	state := FileParsed

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	functions, err := pysrc.Parse(ctx, content)
	if err != nil {
		state = FileSkipped
		events.Emit(ctx, events.ScanFile, events.NewError("parse failed, file skipped"))
		return 0, fmt.Errorf("parsing %s (%s): %w", path, state, err)
	}

	undocumented := selectUndocumented(functions)
	if len(undocumented) == 0 {
		slog.Debug("no undocumented functions", "file", path)
		return 0, nil
	}

	if s.dryRun {
		var ledger cost.Ledger
		for _, fn := range undocumented {
			ledger.Add(s.estimator.Estimate(fn.Source))
		}
		state = FileDryRunComplete
		slog.Info(fmt.Sprintf("File cost: $%.4f", ledger.Total()), "file", path, "state", string(state))
		return ledger.Total(), nil
	}

	// Dispatch one task per undocumented function on a bounded pool. The
	// results channel is buffered so no worker ever blocks on a slow consumer.
	state = FileDispatched
	names := make([]string, len(undocumented))
	for i, fn := range undocumented {
		names[i] = fn.Name
	}
	board := taskboard.NewBoard(path, names)
	s.reporter.Begin(path, board.Statuses())

	results := make(chan taskResult, len(undocumented))
	var pool errgroup.Group
	pool.SetLimit(s.workers)
	for _, fn := range undocumented {
		pool.Go(func() error {
			text, actualCost, err := s.generator.GenerateDocstring(ctx, fn.Name, fn.Source)
			results <- taskResult{function: fn.Name, text: text, cost: actualCost, err: err}
			return nil
		})
	}

	// Collect in completion order. Single consumer: board, patch set and
	// ledger mutations all happen right here.
	state = FileCollecting
	patchSet := make(map[string]string)
	var ledger cost.Ledger
	for range undocumented {
		res := <-results
		var timeout *client.TimeoutError
		switch {
		case res.err == nil:
			board.MarkSucceeded(res.function, res.text, res.cost)
			patchSet[res.function] = res.text
			ledger.Add(res.cost)
		case errors.As(res.err, &timeout):
			board.MarkTimedOut(res.function, res.err.Error())
			slog.Warn("generation timed out", "file", path, "function", res.function)
		default:
			board.MarkFailed(res.function, res.err.Error())
			slog.Warn("generation failed", "file", path, "function", res.function, "error", res.err)
		}
		s.reporter.Update(path, res.function, board.Statuses())
	}
	_ = pool.Wait()

	board.Finalize()
	s.reporter.Finish(path, board.Statuses())

	if len(patchSet) > 0 {
		state = FilePatching
		newContent, err := patch.Apply(content, patchSet)
		if err != nil {
			state = FileSkipped
			return ledger.Total(), fmt.Errorf("patching %s (%s): %w", path, state, err)
		}
		if err := os.WriteFile(path, newContent, info.Mode().Perm()); err != nil {
			state = FileSkipped
			return ledger.Total(), fmt.Errorf("writing %s (%s): %w", path, state, err)
		}
		state = FileWritten
		events.Emit(ctx, events.ScanFile, events.NewSuccess(fmt.Sprintf("patched %d functions", len(patchSet))))
	}

	slog.Info(fmt.Sprintf("File cost: $%.4f", ledger.Total()), "file", path, "state", string(state))
	return ledger.Total(), nil
}

// selectUndocumented returns the functions missing a docstring, first
// occurrence only when a name repeats at the top level.
func selectUndocumented(functions []pysrc.FunctionSignature) []pysrc.FunctionSignature {
	seen := make(map[string]bool, len(functions))
	var out []pysrc.FunctionSignature
	for _, fn := range functions {
		if seen[fn.Name] {
			continue
		}
		seen[fn.Name] = true
		if !fn.HasDocstring {
			out = append(out, fn)
		}
	}
	return out
}
