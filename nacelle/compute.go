package nacelle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/soypat/acgeom/internal/logging"
	"github.com/soypat/acgeom/internal/observability"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ComputeOptions configures Collection.ComputeAll.
type ComputeOptions struct {
	// Samples per outline. Zero keeps each member's current sample count.
	Samples int
	// Limit bounds the number of members computed at once. Zero means no limit.
	Limit   int
	Logger  *zap.Logger
	Metrics *observability.GeometryCollector
}

// ConstraintWarnings collects the geometry constraint violations of a batch
// computation. The members concerned kept their previous outlines.
type ConstraintWarnings struct {
	Errs []error
}

func (w *ConstraintWarnings) Error() string {
	msgs := make([]string, len(w.Errs))
	for i, err := range w.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d constraint warnings: %s", len(w.Errs), strings.Join(msgs, "; "))
}

func (w *ConstraintWarnings) Unwrap() []error { return w.Errs }

// ComputeAll recomputes the geometry of every member in parallel, one
// goroutine per member. Members are distinct, so no nacelle is computed twice.
//
// Constraint violations do not stop the batch; they are returned together
// as a *ConstraintWarnings once all members are done. Any other error
// cancels members not yet started and is returned.
func (c *Collection) ComputeAll(ctx context.Context, opts ComputeOptions) error {
	log := logging.OrNop(opts.Logger)
	warnings := make([]error, len(c.members))
	g, ctx := errgroup.WithContext(ctx)
	if opts.Limit > 0 {
		g.SetLimit(opts.Limit)
	}
	for i, n := range c.members {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			samples := opts.Samples
			if samples == 0 {
				samples = n.Samples()
			}
			start := time.Now()
			err := n.ComputeGeometry(samples)
			elapsed := time.Since(start)
			mounting := n.Mounting().String()
			switch {
			case err == nil:
				opts.Metrics.ObserveComputation(mounting, observability.OutcomeOK, elapsed)
				log.Debug("nacelle geometry computed",
					zap.String("id", n.ID()), zap.Int("samples", samples), zap.Duration("elapsed", elapsed))
			case errors.Is(err, ErrGeometryConstraint):
				opts.Metrics.ObserveComputation(mounting, observability.OutcomeConstraint, elapsed)
				log.Warn("nacelle geometry kept", zap.String("id", n.ID()), zap.Error(err))
				warnings[i] = err
			default:
				opts.Metrics.ObserveComputation(mounting, observability.OutcomeError, elapsed)
				log.Error("nacelle geometry failed", zap.String("id", n.ID()), zap.Error(err))
				return err
			}
			return nil
		})
	}
	err := g.Wait()
	area := c.WettedArea()
	opts.Metrics.SetCollection(c.Len(), area.SI())
	if err != nil {
		return err
	}
	var warns []error
	for _, w := range warnings {
		if w != nil {
			warns = append(warns, w)
		}
	}
	if len(warns) > 0 {
		return &ConstraintWarnings{Errs: warns}
	}
	log.Info("collection computed", zap.Int("members", c.Len()), zap.Stringer("wetted_area", area))
	return nil
}
