package enrich

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Pipeline coordinates the execution of a sequence of stages for items
// flowing through a channel. For each incoming item, steps within the same
// stage run in parallel, and stages themselves run sequentially. Step errors
// are logged and do not stop processing of the current item.
//
// Pipeline is generic over the item type T.
type Pipeline[T any] struct {
	stages []Stage[T]
	log    zerolog.Logger
}

// NewPipeline constructs a Pipeline from the provided stages. Stages will be
// applied to each item in order.
func NewPipeline[T any](log zerolog.Logger, stages ...Stage[T]) *Pipeline[T] {
	return &Pipeline[T]{stages: stages, log: log}
}

// Run consumes items from the input channel and returns a channel emitting
// the same items after all stages have been applied. For each item:
//   - All steps in a stage are started concurrently and must complete before
//     moving to the next stage (a stage barrier).
//   - Errors returned by steps are logged and ignored so the pipeline can
//     continue processing.
//   - The provided context can be observed by steps for cancellation; the
//     pipeline keeps running until the input channel is closed or the context
//     is canceled.
func (p *Pipeline[T]) Run(ctx context.Context, in <-chan *T) <-chan *T {
	out := make(chan *T)
	go func() {
		defer close(out)

		for item := range in {
			for _, stage := range p.stages {
				var wg sync.WaitGroup
				for _, step := range stage.steps {
					wg.Add(1)
					go func(step Step[T]) {
						defer wg.Done()
						if err := step(ctx, item); err != nil {
							p.log.Warn().Err(err).Msg("enrichment step failed")
						}
					}(step)
				}
				wg.Wait() // stage barrier: all steps finish before the next stage
			}

			select {
			case out <- item:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
