package build

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/logfields"
)

// StageName identifies a pipeline stage in logs, reports and metrics.
type StageName string

const (
	StageDiscover   StageName = "discover"
	StageCollect    StageName = "collect"
	StageTree       StageName = "tree"
	StageRender     StageName = "render"
	StageNavigation StageName = "navigation"
	StageHomepage   StageName = "homepage"
)

type stageFunc func(ctx context.Context, st *runState) error

type stageDef struct {
	name StageName
	fn   stageFunc
}

// runStages executes stages in order, recording timing and stopping on the
// first error.
func (p *Pipeline) runStages(ctx context.Context, st *runState, stages []stageDef) error {
	for _, s := range stages {
		select {
		case <-ctx.Done():
			return fmt.Errorf("stage %s canceled: %w", s.name, ctx.Err())
		default:
		}

		t0 := time.Now()
		err := s.fn(ctx, st)
		dur := time.Since(t0)

		st.report.StageDurations[string(s.name)] = dur
		p.recorder.ObserveStageDuration(string(s.name), dur)
		slog.Debug("Stage complete", logfields.Stage(string(s.name)), logfields.Duration(dur))

		if err != nil {
			return err
		}
	}
	return nil
}
