package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/2beens/familyfit/internal/models"
	"github.com/2beens/familyfit/internal/telemetry/metrics"
	"github.com/2beens/familyfit/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	megabyte = 1024 * 1024
	// error bodies can be whole html pages, keep only the start
	maxErrorBodyLen = 256
)

// Api talks to the family health backend, which owns profiles, plans,
// progress and weight entries, and computes BMR/TDEE.
type Api struct {
	baseURL         string // e.g. http://localhost:8001/api
	httpClient      *http.Client
	profileCache    *freecache.Cache
	profileCacheTTL int // seconds, 0 disables caching
	metricsManager  *metrics.Manager
}

func NewApi(
	baseURL string,
	httpClient *http.Client,
	profileCacheTTL time.Duration,
	metricsManager *metrics.Manager,
) *Api {
	return &Api{
		baseURL:         strings.TrimSuffix(baseURL, "/"),
		httpClient:      httpClient,
		profileCache:    freecache.NewCache(5 * megabyte),
		profileCacheTTL: int(profileCacheTTL.Seconds()),
		metricsManager:  metricsManager,
	}
}

func (api *Api) GetProfile(ctx context.Context, profileID string) (_ *models.Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "gateway.getProfile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("profile.id", profileID))

	profile := &models.Profile{}
	cacheKey := []byte("profile::" + profileID)
	if api.profileCacheTTL > 0 {
		if cached, err := api.profileCache.Get(cacheKey); err == nil {
			if err := json.Unmarshal(cached, profile); err == nil {
				log.Tracef("gateway: profile %s found in cache", profileID)
				span.SetAttributes(attribute.Bool("profile.from-cache", true))
				return profile, nil
			} else {
				log.Errorf("gateway: unmarshal cached profile %s: %s", profileID, err)
			}
		}
	}

	respBytes, err := api.do(ctx, "get_profile", http.MethodGet, "/profiles/"+url.PathEscape(profileID), nil)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(respBytes, profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile response: %w", err)
	}

	if api.profileCacheTTL > 0 {
		if err := api.profileCache.Set(cacheKey, respBytes, api.profileCacheTTL); err != nil {
			log.Errorf("gateway: failed to cache profile %s: %s", profileID, err)
		}
	}

	return profile, nil
}

// InvalidateProfile drops the cached profile, e.g. after a new weight entry changed it.
func (api *Api) InvalidateProfile(profileID string) {
	api.profileCache.Del([]byte("profile::" + profileID))
}

func (api *Api) GetActivePlans(ctx context.Context, profileID string) (_ *models.ActivePlans, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "gateway.getActivePlans")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("profile.id", profileID))

	plans := &models.ActivePlans{}
	if err := api.getJSON(ctx, "get_active_plans", "/plans/"+url.PathEscape(profileID)+"/latest", plans); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Bool("plans.has-workout", plans.WorkoutPlan != nil),
		attribute.Bool("plans.has-nutrition", plans.NutritionPlan != nil),
	)
	return plans, nil
}

func (api *Api) GetProgress(ctx context.Context, profileID, planID string) (_ []models.ProgressEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "gateway.getProgress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("profile.id", profileID),
		attribute.String("plan.id", planID),
	)

	query := url.Values{}
	query.Set("plan_id", planID)
	path := "/progress/" + url.PathEscape(profileID) + "?" + query.Encode()

	entries := make([]models.ProgressEntry, 0)
	if err := api.getJSON(ctx, "get_progress", path, &entries); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("progress.entries", len(entries)))
	return entries, nil
}

type recordProgressRequest struct {
	ProfileID    string `json:"profile_id"`
	PlanID       string `json:"plan_id"`
	Day          int    `json:"day"`
	ExerciseName string `json:"exercise_name"`
	Completed    bool   `json:"completed"`
}

func (api *Api) RecordProgress(
	ctx context.Context,
	profileID, planID string,
	day int,
	exerciseName string,
	completed bool,
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "gateway.recordProgress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("profile.id", profileID),
		attribute.String("plan.id", planID),
		attribute.Int("day", day),
		attribute.String("exercise", exerciseName),
		attribute.Bool("completed", completed),
	)

	return api.postJSON(ctx, "record_progress", "/progress", recordProgressRequest{
		ProfileID:    profileID,
		PlanID:       planID,
		Day:          day,
		ExerciseName: exerciseName,
		Completed:    completed,
	}, nil)
}

func (api *Api) GetWeightHistory(ctx context.Context, profileID string) (_ []models.WeightEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "gateway.getWeightHistory")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("profile.id", profileID))

	entries := make([]models.WeightEntry, 0)
	if err := api.getJSON(ctx, "get_weight_history", "/weight/"+url.PathEscape(profileID), &entries); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("weight.entries", len(entries)))
	return entries, nil
}

type addWeightRequest struct {
	ProfileID string  `json:"profile_id"`
	Weight    float64 `json:"weight"`
}

func (api *Api) AddWeightEntry(ctx context.Context, profileID string, weight float64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "gateway.addWeightEntry")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("profile.id", profileID),
		attribute.Float64("weight", weight),
	)

	if weight <= 0 {
		return ErrInvalidWeight
	}

	if err := api.postJSON(ctx, "add_weight_entry", "/weight", addWeightRequest{
		ProfileID: profileID,
		Weight:    weight,
	}, nil); err != nil {
		return err
	}

	// the backend updates the profile weight together with the new entry
	api.InvalidateProfile(profileID)
	return nil
}

func (api *Api) GetDerivedMetrics(ctx context.Context, profileID string) (_ *models.DerivedMetrics, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "gateway.getDerivedMetrics")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("profile.id", profileID))

	derived := &models.DerivedMetrics{}
	if err := api.getJSON(ctx, "get_derived_metrics", "/bmr/"+url.PathEscape(profileID), derived); err != nil {
		return nil, err
	}
	return derived, nil
}

// GeneratePlan hands the plan generation over to the backend. The new plans become
// the profile's active ones; callers reload the dashboard to see them.
func (api *Api) GeneratePlan(ctx context.Context, req models.PlanRequest) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "gateway.generatePlan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("profile.id", req.ProfileID),
		attribute.Int("duration.days", req.DurationDays),
		attribute.String("intensity", string(req.WorkoutIntensity)),
	)

	return api.postJSON(ctx, "generate_plan", "/generate-plan", req, nil)
}

func (api *Api) getJSON(ctx context.Context, op, path string, out any) error {
	respBytes, err := api.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(respBytes, out); err != nil {
		return fmt.Errorf("gateway %s: unmarshal response: %w", op, err)
	}
	return nil
}

func (api *Api) postJSON(ctx context.Context, op, path string, body any, out any) error {
	reqBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("gateway %s: marshal request: %w", op, err)
	}

	respBytes, err := api.do(ctx, op, http.MethodPost, path, reqBytes)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBytes, out); err != nil {
		return fmt.Errorf("gateway %s: unmarshal response: %w", op, err)
	}
	return nil
}

func (api *Api) do(ctx context.Context, op, method, path string, body []byte) ([]byte, error) {
	defer func(begin time.Time) {
		if api.metricsManager != nil {
			api.metricsManager.HistogramGatewayCallDuration.WithLabelValues(op).Observe(time.Since(begin).Seconds())
		}
	}(time.Now())

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	reqURL := api.baseURL + path
	log.Tracef("gateway %s: %s %s", op, method, reqURL)

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("gateway %s: new request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := api.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway %s: http client do: %w", op, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gateway %s: read response body: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       truncateErrorBody(respBytes),
		}
	}

	return respBytes, nil
}

// truncateErrorBody cuts the body to maxErrorBodyLen bytes, backing off to a rune start
// so a multi-byte character is never split.
func truncateErrorBody(body []byte) string {
	if len(body) <= maxErrorBodyLen {
		return string(body)
	}
	end := maxErrorBodyLen
	for end > 0 && !utf8.RuneStart(body[end]) {
		end--
	}
	return string(body[:end])
}
