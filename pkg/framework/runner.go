package framework

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/golang/glog"
)

// ErrForcedExit is returned by Wait after a second stop signal.
var ErrForcedExit = errors.New("forced exit")

// Runner runs Runnables in background and collects their errors.
type Runner struct {
	Context context.Context
	Runners []Runnable

	resultCh chan runResult
	exitCh   chan struct{}
}

type runResult struct {
	name string
	err  error
}

// NewRunner creates a runner with a background context.
func NewRunner() *Runner {
	return NewRunnerWith(context.Background())
}

// NewRunnerWith creates a runner bound to ctx.
func NewRunnerWith(ctx context.Context) *Runner {
	return &Runner{
		Context:  ctx,
		resultCh: make(chan runResult),
		exitCh:   make(chan struct{}),
	}
}

// HandleSignals cancels Context on SIGINT or SIGTERM. A second signal
// makes Wait return ErrForcedExit without waiting for the Runnables.
func (r *Runner) HandleSignals() *Runner {
	ctx, stop := signal.NotifyContext(r.Context, os.Interrupt, syscall.SIGTERM)
	r.Context = ctx
	go func() {
		<-ctx.Done()
		stop()
		glog.Info("stop requested")
		again := make(chan os.Signal, 1)
		signal.Notify(again, os.Interrupt, syscall.SIGTERM)
		<-again
		glog.Error("stop requested again, force exit")
		close(r.exitCh)
	}()
	return r
}

// Go starts runnables with Context.
func (r *Runner) Go(runnables ...Runnable) *Runner {
	return r.GoWith(r.Context, runnables...)
}

// GoWith starts runnables with ctx.
func (r *Runner) GoWith(ctx context.Context, runnables ...Runnable) *Runner {
	for _, runnable := range runnables {
		name := RunnableName(runnable, len(r.Runners))
		r.Runners = append(r.Runners, runnable)
		go func(runnable Runnable, name string) {
			glog.V(4).Infof("runner %s started", name)
			err := runnable.Run(ctx)
			glog.V(4).Infof("runner %s stopped: %v", name, err)
			r.resultCh <- runResult{name: name, err: err}
		}(runnable, name)
	}
	return r
}

// Wait blocks until every started Runnable returns. Errors other than
// context.Canceled are aggregated and prefixed with the runner name.
func (r *Runner) Wait() error {
	var errs AggregatedError
	for range r.Runners {
		select {
		case <-r.exitCh:
			return ErrForcedExit
		case res := <-r.resultCh:
			if res.err != nil && !errors.Is(res.err, context.Canceled) {
				errs.Add(fmt.Errorf("%s: %w", res.name, res.err))
			}
		}
	}
	return errs.Aggregate()
}

// RunnableName is the Name of a Named runnable, or its index otherwise.
func RunnableName(r Runnable, index int) string {
	if named, ok := r.(Named); ok {
		return named.Name()
	}
	return "#" + strconv.Itoa(index)
}

// RunWithContextCloser runs fn which has no context. closer is closed
// once ctx is done to unblock fn, or after fn returns on its own.
// context.Canceled is returned when ctx ends the run.
func RunWithContextCloser(ctx context.Context, closer io.Closer, fn func() error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- fn()
	}()
	select {
	case err := <-errCh:
		closer.Close()
		return err
	case <-ctx.Done():
		closer.Close()
		<-errCh
		return context.Canceled
	}
}
