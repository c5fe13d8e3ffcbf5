package dashboard

import (
	"context"
	"fmt"

	"github.com/2beens/familyfit/internal/models"
	"github.com/2beens/familyfit/internal/telemetry/metrics"
	"github.com/2beens/familyfit/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// refreshTarget names the sources re-fetched after a mutation, and with them the
// derived structures that get rebuilt. Everything else is carried over.
type refreshTarget int

const (
	// progress log -> progress index, day progress
	refreshProgress refreshTarget = iota
	// weight history + derived metrics -> weight series, stats
	refreshWeight
)

func (t refreshTarget) String() string {
	switch t {
	case refreshProgress:
		return "progress"
	case refreshWeight:
		return "weight"
	default:
		return fmt.Sprintf("refreshTarget(%d)", int(t))
	}
}

type refreshResult struct {
	target   refreshTarget
	progress []models.ProgressEntry
	weights  []models.WeightEntry
	metrics  *models.DerivedMetrics
}

func (a *Aggregator) refetch(ctx context.Context, target refreshTarget, snap *Snapshot) (refreshResult, error) {
	result := refreshResult{target: target}
	switch target {
	case refreshProgress:
		progress, err := a.gateway.GetProgress(ctx, snap.ProfileID, snap.WorkoutPlan.ID)
		if err != nil {
			return result, fmt.Errorf("refetch progress: %w", err)
		}
		result.progress = progress
	case refreshWeight:
		weights, err := a.gateway.GetWeightHistory(ctx, snap.ProfileID)
		if err != nil {
			return result, fmt.Errorf("refetch weight history: %w", err)
		}
		derived, err := a.gateway.GetDerivedMetrics(ctx, snap.ProfileID)
		if err != nil {
			return result, fmt.Errorf("refetch derived metrics: %w", err)
		}
		result.weights = weights
		result.metrics = derived
	default:
		return result, fmt.Errorf("unknown refresh target: %s", target)
	}
	return result, nil
}

func (r refreshResult) applyTo(current *Snapshot, labeler DateLabeler, a *Aggregator) *Snapshot {
	switch r.target {
	case refreshProgress:
		return current.withProgress(r.progress, a.now())
	case refreshWeight:
		return current.withWeight(r.weights, r.metrics, labeler, a.now())
	default:
		return current
	}
}

// mutateAndRefresh submits one mutation, re-fetches the sources named by target and
// publishes the rebuilt snapshot. Nothing is applied locally before the gateway confirms.
// On failure the last confirmed snapshot stays, with a notice attached.
// Mutations of one session run one at a time, so a refetch that read the backend
// earlier can never be published over a later one.
func (a *Aggregator) mutateAndRefresh(
	ctx context.Context,
	sess *Session,
	op string,
	target refreshTarget,
	ref mutationRef,
	mutate func(ctx context.Context) error,
) (_ *Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.mutateAndRefresh")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("op", op),
		attribute.String("refresh.target", target.String()),
		attribute.String("session.id", sess.ID()),
	)

	sess.mutationMu.Lock()
	defer sess.mutationMu.Unlock()

	if err := mutate(ctx); err != nil {
		return nil, a.failMutation(sess, ref, op, err)
	}
	// the mutation itself went through, but nobody is looking at this profile anymore
	if !sess.isCurrent(ref.generation) {
		a.discardStale(sess, op)
		return nil, ErrStaleResponse
	}

	result, err := a.refetch(ctx, target, ref.snapshot)
	if err != nil {
		return nil, a.failMutation(sess, ref, op, err)
	}

	next, ok := sess.publishIf(ref.generation, func(current *Snapshot) *Snapshot {
		return result.applyTo(current, sess.labeler, a)
	})
	if !ok {
		a.discardStale(sess, op)
		return nil, ErrStaleResponse
	}

	a.metricsManager.CounterMutations.WithLabelValues(op, metrics.ResultOK).Inc()
	log.Tracef("dashboard [%s]: %s done, refreshed %s", sess.ID(), op, target)

	return next, nil
}

func (a *Aggregator) failMutation(sess *Session, ref mutationRef, op string, cause error) error {
	mutationErr := &MutationError{Op: op, Err: cause}
	notice := Notice(mutationErr)

	if _, ok := sess.publishIf(ref.generation, func(current *Snapshot) *Snapshot {
		return current.withNotice(notice, a.now())
	}); !ok {
		a.discardStale(sess, op)
		return ErrStaleResponse
	}

	a.metricsManager.CounterMutations.WithLabelValues(op, metrics.ResultFailed).Inc()
	log.Errorf("dashboard [%s]: %s", sess.ID(), mutationErr)

	return mutationErr
}

func (a *Aggregator) discardStale(sess *Session, op string) {
	a.metricsManager.CounterStaleDiscards.Inc()
	a.metricsManager.CounterMutations.WithLabelValues(op, metrics.ResultStale).Inc()
	log.Debugf("dashboard [%s]: %s result dropped, session moved on", sess.ID(), op)
}
