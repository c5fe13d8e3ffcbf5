package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/2beens/familyfit/internal/models"
	"github.com/2beens/familyfit/internal/telemetry/metrics"
	"github.com/2beens/familyfit/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	opRecordProgress  = "record_progress"
	opRecordWeight    = "record_weight"
	opRegeneratePlans = "regenerate_plans"
)

//go:generate mockgen -source=$GOFILE -destination=gateway_mocks_test.go -package=dashboard_test

type dataGateway interface {
	GetProfile(ctx context.Context, profileID string) (*models.Profile, error)
	GetActivePlans(ctx context.Context, profileID string) (*models.ActivePlans, error)
	GetProgress(ctx context.Context, profileID, planID string) ([]models.ProgressEntry, error)
	RecordProgress(ctx context.Context, profileID, planID string, day int, exerciseName string, completed bool) error
	GetWeightHistory(ctx context.Context, profileID string) ([]models.WeightEntry, error)
	AddWeightEntry(ctx context.Context, profileID string, weight float64) error
	GetDerivedMetrics(ctx context.Context, profileID string) (*models.DerivedMetrics, error)
	GeneratePlan(ctx context.Context, req models.PlanRequest) error
}

// Aggregator reconciles plans, progress, weight history and derived metrics of a
// profile into one dashboard snapshot. It keeps no per-dashboard state itself; that
// lives in the Session passed to each operation.
type Aggregator struct {
	gateway        dataGateway
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewAggregator(gateway dataGateway, metricsManager *metrics.Manager) *Aggregator {
	return &Aggregator{
		gateway:        gateway,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// LoadAll selects the profile (or reloads the current one) and fetches everything the
// dashboard shows. A load superseded by a newer one returns ErrStaleResponse and
// leaves the session untouched.
func (a *Aggregator) LoadAll(ctx context.Context, sess *Session, profileID string) (_ *Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.loadAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("session.id", sess.ID()),
		attribute.String("profile.id", profileID),
	)

	if profileID == "" {
		a.metricsManager.CounterDashboardLoads.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, newPreconditionError("No profile selected.")
	}

	sess.touch(a.now())
	generation := sess.beginLoad(profileID, a.now())
	span.SetAttributes(attribute.Int64("generation", int64(generation)))

	data, err := a.fetchAll(ctx, sess, generation, profileID)
	if err != nil {
		if !sess.isCurrent(generation) {
			return nil, a.discardStaleLoad(sess, profileID)
		}

		notice := Notice(err)
		if _, ok := sess.publishIf(generation, func(current *Snapshot) *Snapshot {
			return newFailedSnapshot(generation, profileID, current.SelectedDay, notice, a.now())
		}); !ok {
			return nil, a.discardStaleLoad(sess, profileID)
		}

		a.metricsManager.CounterDashboardLoads.WithLabelValues(metrics.ResultFailed).Inc()
		log.Errorf("dashboard [%s]: %s", sess.ID(), err)
		return nil, err
	}

	next, ok := sess.publishIf(generation, func(current *Snapshot) *Snapshot {
		return newReadySnapshot(generation, profileID, current.SelectedDay, data, sess.labeler, a.now())
	})
	if !ok {
		return nil, a.discardStaleLoad(sess, profileID)
	}

	a.metricsManager.CounterDashboardLoads.WithLabelValues(metrics.ResultOK).Inc()
	log.Debugf("dashboard [%s]: profile %s loaded, generation %d", sess.ID(), profileID, generation)

	return next, nil
}

// fetchAll runs the gateway reads in dependency order. It stops early once the session
// moved on, there is no point in fetching the rest for an abandoned load.
func (a *Aggregator) fetchAll(ctx context.Context, sess *Session, generation uint64, profileID string) (dashboardData, error) {
	var data dashboardData
	loadErr := func(source string, err error) error {
		return &LoadError{ProfileID: profileID, Source: source, Err: err}
	}

	profile, err := a.gateway.GetProfile(ctx, profileID)
	if err != nil {
		return data, loadErr("profile", err)
	}
	data.profile = profile
	if !sess.isCurrent(generation) {
		return data, ErrStaleResponse
	}

	plans, err := a.gateway.GetActivePlans(ctx, profileID)
	if err != nil {
		return data, loadErr("plans", err)
	}
	data.plans = plans
	if !sess.isCurrent(generation) {
		return data, ErrStaleResponse
	}

	// progress is scoped to the active workout plan, without one the index stays empty
	if plans != nil && plans.WorkoutPlan != nil {
		progress, err := a.gateway.GetProgress(ctx, profileID, plans.WorkoutPlan.ID)
		if err != nil {
			return data, loadErr("progress", err)
		}
		data.progress = progress
		if !sess.isCurrent(generation) {
			return data, ErrStaleResponse
		}
	}

	weights, err := a.gateway.GetWeightHistory(ctx, profileID)
	if err != nil {
		return data, loadErr("weight history", err)
	}
	data.weights = weights
	if !sess.isCurrent(generation) {
		return data, ErrStaleResponse
	}

	derived, err := a.gateway.GetDerivedMetrics(ctx, profileID)
	if err != nil {
		return data, loadErr("metrics", err)
	}
	data.metrics = derived

	return data, nil
}

func (a *Aggregator) discardStaleLoad(sess *Session, profileID string) error {
	a.metricsManager.CounterStaleDiscards.Inc()
	a.metricsManager.CounterDashboardLoads.WithLabelValues(metrics.ResultStale).Inc()
	log.Debugf("dashboard [%s]: load of profile %s superseded, result dropped", sess.ID(), profileID)
	return ErrStaleResponse
}

// RecordExerciseCompletion logs a completion toggle, then re-fetches the progress log.
// Plans, weight and metrics are carried over as they are.
func (a *Aggregator) RecordExerciseCompletion(
	ctx context.Context,
	sess *Session,
	exerciseName string,
	day int,
	completed bool,
) (_ *Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.recordExerciseCompletion")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("session.id", sess.ID()),
		attribute.String("exercise.name", exerciseName),
		attribute.Int("day", day),
		attribute.Bool("completed", completed),
	)

	sess.touch(a.now())
	ref := sess.mutationRef()
	snap := ref.snapshot
	switch {
	case !snap.IsReady():
		err = newPreconditionError("Dashboard is not loaded yet.")
	case snap.WorkoutPlan == nil:
		err = newPreconditionError("No active workout plan. Generate a plan first.")
	case exerciseName == "":
		err = newPreconditionError("Exercise name is empty.")
	default:
		if _, found := snap.WorkoutPlan.Day(day); !found {
			err = newPreconditionError("Day %d is not part of the workout plan.", day)
		}
	}
	if err != nil {
		a.metricsManager.CounterMutations.WithLabelValues(opRecordProgress, metrics.ResultInvalid).Inc()
		return nil, err
	}

	profileID, planID := snap.ProfileID, snap.WorkoutPlan.ID
	return a.mutateAndRefresh(ctx, sess, opRecordProgress, refreshProgress, ref, func(ctx context.Context) error {
		return a.gateway.RecordProgress(ctx, profileID, planID, day, exerciseName, completed)
	})
}

// RecordWeight logs a new weight entry, then re-fetches weight history and derived
// metrics. Plans and progress are carried over.
func (a *Aggregator) RecordWeight(ctx context.Context, sess *Session, weight float64) (_ *Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.recordWeight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("session.id", sess.ID()),
		attribute.Float64("weight", weight),
	)

	sess.touch(a.now())
	ref := sess.mutationRef()
	switch {
	case !(weight > 0) || math.IsInf(weight, 1):
		err = newPreconditionError("Please enter a valid weight.")
	case !ref.snapshot.IsReady():
		err = newPreconditionError("Dashboard is not loaded yet.")
	}
	if err != nil {
		a.metricsManager.CounterMutations.WithLabelValues(opRecordWeight, metrics.ResultInvalid).Inc()
		return nil, err
	}

	profileID := ref.snapshot.ProfileID
	return a.mutateAndRefresh(ctx, sess, opRecordWeight, refreshWeight, ref, func(ctx context.Context) error {
		return a.gateway.AddWeightEntry(ctx, profileID, weight)
	})
}

// SelectDay only changes what the day view shows. A day outside the plan is recorded
// as selected and renders an empty day view.
func (a *Aggregator) SelectDay(sess *Session, day int) *Snapshot {
	now := a.now()
	sess.touch(now)
	return sess.selectDay(day, now)
}

// RegeneratePlans hands a plan request off to the backend and reloads the dashboard,
// so the newly generated pair becomes the active one.
func (a *Aggregator) RegeneratePlans(ctx context.Context, sess *Session, req models.PlanRequest) (_ *Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.regeneratePlans")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("session.id", sess.ID()),
		attribute.Int("duration.days", req.DurationDays),
		attribute.String("intensity", string(req.WorkoutIntensity)),
	)

	sess.touch(a.now())
	ref := sess.mutationRef()
	if ref.snapshot.ProfileID == "" {
		a.metricsManager.CounterMutations.WithLabelValues(opRegeneratePlans, metrics.ResultInvalid).Inc()
		return nil, newPreconditionError("No profile selected.")
	}

	req.ProfileID = ref.snapshot.ProfileID
	if req.DurationDays == 0 {
		req.DurationDays = models.DefaultPlanDurationDays
	}
	if req.WorkoutIntensity == "" {
		req.WorkoutIntensity = models.IntensityMedium
	}
	if err := req.Validate(); err != nil {
		a.metricsManager.CounterMutations.WithLabelValues(opRegeneratePlans, metrics.ResultInvalid).Inc()
		return nil, &PreconditionError{Reason: fmt.Sprintf("Invalid plan request: %s.", err)}
	}

	if err := a.gateway.GeneratePlan(ctx, req); err != nil {
		return nil, a.failMutation(sess, ref, opRegeneratePlans, err)
	}
	if !sess.isCurrent(ref.generation) {
		a.discardStale(sess, opRegeneratePlans)
		return nil, ErrStaleResponse
	}

	a.metricsManager.CounterMutations.WithLabelValues(opRegeneratePlans, metrics.ResultOK).Inc()
	log.Debugf("dashboard [%s]: new plans generated for profile %s", sess.ID(), req.ProfileID)

	return a.LoadAll(ctx, sess, req.ProfileID)
}

// Snapshot returns the current snapshot of the session, never nil.
func (a *Aggregator) Snapshot(sess *Session) *Snapshot {
	return sess.Snapshot()
}
