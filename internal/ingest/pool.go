package ingest

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/MeKo-Tech/claimlens/internal/document"
)

// pageJob is one recognition unit: a single 1-based page.
type pageJob struct {
	page int
}

// pageResult carries one page's recognized tokens or its failure.
type pageResult struct {
	page   int
	tokens []document.Token
	err    error
}

// recognizeAll recognizes every page of the referenced input under a bounded
// worker pool and returns the tokens in page order. Any page failure aborts
// the whole run; recognition is all-or-nothing per document.
func (c *Coordinator) recognizeAll(ctx context.Context, ref string, totalPages int) ([]document.Token, error) {
	if totalPages <= 0 {
		return nil, fmt.Errorf("no pages to recognize in %q", ref)
	}

	workers := c.cfg.Ingest.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > totalPages {
		workers = totalPages
	}

	jobs := make(chan pageJob, totalPages)
	results := make(chan pageResult, totalPages)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go c.recognizeWorker(ctx, ref, jobs, results, &wg)
	}

	go func() {
		defer close(jobs)
		for page := 1; page <= totalPages; page++ {
			select {
			case jobs <- pageJob{page: page}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	byPage := make(map[int][]document.Token, totalPages)
	var firstErr error
	for r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("recognize page %d: %w", r.page, r.err)
			}
			continue
		}
		byPage[r.page] = r.tokens
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}

	// Reassemble in page order regardless of completion order.
	var tokens []document.Token
	for page := 1; page <= totalPages; page++ {
		tokens = append(tokens, byPage[page]...)
	}
	return tokens, nil
}

// recognizeWorker drains the jobs channel until it closes or the context is
// cancelled.
func (c *Coordinator) recognizeWorker(
	ctx context.Context,
	ref string,
	jobs <-chan pageJob,
	results chan<- pageResult,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for {
		select {
		case job, ok := <-jobs:
			if !ok {
				return
			}
			tokens, err := c.recognizer.RecognizePage(ctx, ref, job.page)
			select {
			case results <- pageResult{page: job.page, tokens: tokens, err: err}:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
