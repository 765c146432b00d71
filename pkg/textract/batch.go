package textract

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// AnalyzeBatch analyzes several images concurrently, at most Parallel at a time.
// Results keep the order of srcs. The first failure cancels the remaining work.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, srcs []Source) ([]*Analysis, error) {
	results := make([]*Analysis, len(srcs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(a.parallel)

	for i, src := range srcs {
		g.Go(func() error {
			a.logger.Debug("Processing image", "number", i+1, "total", len(srcs))
			analysis, err := a.Analyze(gCtx, src)
			if err != nil {
				return err
			}
			results[i] = analysis
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
