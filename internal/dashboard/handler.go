package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/2beens/familyfit/internal/middleware"
	"github.com/2beens/familyfit/internal/models"
	"github.com/2beens/familyfit/internal/telemetry/metrics"
	"github.com/2beens/familyfit/internal/telemetry/tracing"
	"github.com/2beens/familyfit/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type CreateSessionRequest struct {
	ProfileID string `json:"profile_id"`
	Locale    string `json:"locale"`
}

type SelectProfileRequest struct {
	ProfileID string `json:"profile_id"`
}

type RecordProgressRequest struct {
	ExerciseName string `json:"exercise_name"`
	Day          int    `json:"day"`
	Completed    bool   `json:"completed"`
}

type RecordWeightRequest struct {
	Weight float64 `json:"weight"`
}

// RegeneratePlansRequest leaves out what the form defaults: 7 days, medium intensity,
// both plans included.
type RegeneratePlansRequest struct {
	DurationDays     int              `json:"duration_days"`
	WorkoutIntensity models.Intensity `json:"workout_intensity"`
	IncludeWorkout   *bool            `json:"include_workout"`
	IncludeNutrition *bool            `json:"include_nutrition"`
}

type SessionResponse struct {
	SessionID string `json:"sessionId"`
	*Snapshot
}

type Handler struct {
	aggregator    *Aggregator
	sessions      *SessionStore
	defaultLocale string
}

func NewHandler(aggregator *Aggregator, sessions *SessionStore, defaultLocale string) *Handler {
	if defaultLocale == "" {
		defaultLocale = DefaultLocale
	}
	return &Handler{
		aggregator:    aggregator,
		sessions:      sessions,
		defaultLocale: defaultLocale,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	mutationsAllowedPerMin int,
) {
	mainRouter.HandleFunc("/dashboard/sessions", handler.handleCreateSession).Methods("POST", "OPTIONS").Name("dashboard-new-session")
	mainRouter.HandleFunc("/dashboard/sessions/{sid}", handler.handleGetSession).Methods("GET", "OPTIONS").Name("dashboard-get-session")
	mainRouter.HandleFunc("/dashboard/sessions/{sid}", handler.handleDeleteSession).Methods("DELETE", "OPTIONS").Name("dashboard-delete-session")
	mainRouter.HandleFunc("/dashboard/sessions/{sid}/profile", handler.handleSelectProfile).Methods("PUT", "OPTIONS").Name("dashboard-select-profile")
	mainRouter.HandleFunc("/dashboard/sessions/{sid}/reload", handler.handleReload).Methods("POST", "OPTIONS").Name("dashboard-reload")
	mainRouter.HandleFunc("/dashboard/sessions/{sid}/day/{day}", handler.handleSelectDay).Methods("PUT", "OPTIONS").Name("dashboard-select-day")

	mutationsSubrouter := mainRouter.PathPrefix("/dashboard/sessions/{sid}").Subrouter()
	mutationsSubrouter.
		HandleFunc("/progress", handler.handleRecordProgress).
		Methods("POST", "OPTIONS").Name("dashboard-record-progress")
	mutationsSubrouter.
		HandleFunc("/weight", handler.handleRecordWeight).
		Methods("POST", "OPTIONS").Name("dashboard-record-weight")
	mutationsSubrouter.
		HandleFunc("/plans", handler.handleRegeneratePlans).
		Methods("POST", "OPTIONS").Name("dashboard-regenerate-plans")

	// every mutation goes through to the backend, keep them in check
	mutationsSubrouter.Use(middleware.RateLimit(rateLimiter, "dashboard-mutations", mutationsAllowedPerMin, metricsManager))
}

func (handler *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.newSession")
	defer span.End()

	var req CreateSessionRequest
	if err := decodeJSONBody(r, &req); err != nil {
		log.Tracef("new dashboard session, decode request: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "Invalid request.")
		return
	}
	if req.ProfileID == "" {
		pkg.WriteJSONError(w, http.StatusBadRequest, "No profile selected.")
		return
	}

	locale := req.Locale
	if locale == "" {
		locale = handler.defaultLocale
	}
	sess := handler.sessions.Create(locale)
	span.SetAttributes(attribute.String("session.id", sess.ID()))

	// the session exists even when the first load fails, the client retries with reload
	snap, err := handler.aggregator.LoadAll(ctx, sess, req.ProfileID)
	if err != nil && !errors.Is(err, ErrLoadFailed) {
		handler.writeError(w, err)
		return
	}
	if snap == nil {
		snap = sess.Snapshot()
	}

	pkg.WriteJSONResponse(w, http.StatusCreated, SessionResponse{SessionID: sess.ID(), Snapshot: snap})
}

func (handler *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.getSession")
	defer span.End()

	sess, ok := handler.session(w, r)
	if !ok {
		return
	}
	if err := handler.sessions.Touch(sess.ID()); err != nil {
		handler.writeError(w, err)
		return
	}

	handler.writeSnapshot(w, sess, handler.aggregator.Snapshot(sess))
}

func (handler *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.deleteSession")
	defer span.End()

	sid := mux.Vars(r)["sid"]
	if !handler.sessions.Delete(sid) {
		handler.writeError(w, ErrSessionNotFound)
		return
	}

	log.Debugf("dashboard session %s deleted", sid)
	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) handleSelectProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.selectProfile")
	defer span.End()

	sess, ok := handler.session(w, r)
	if !ok {
		return
	}

	var req SelectProfileRequest
	if err := decodeJSONBody(r, &req); err != nil {
		log.Tracef("select profile, decode request: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "Invalid request.")
		return
	}

	snap, err := handler.aggregator.LoadAll(ctx, sess, req.ProfileID)
	if err != nil {
		handler.writeError(w, err)
		return
	}

	handler.writeSnapshot(w, sess, snap)
}

func (handler *Handler) handleReload(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.reload")
	defer span.End()

	sess, ok := handler.session(w, r)
	if !ok {
		return
	}

	snap, err := handler.aggregator.LoadAll(ctx, sess, sess.ProfileID())
	if err != nil {
		handler.writeError(w, err)
		return
	}

	handler.writeSnapshot(w, sess, snap)
}

func (handler *Handler) handleSelectDay(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.selectDay")
	defer span.End()

	sess, ok := handler.session(w, r)
	if !ok {
		return
	}

	day, err := strconv.Atoi(mux.Vars(r)["day"])
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "Day must be a number.")
		return
	}

	handler.writeSnapshot(w, sess, handler.aggregator.SelectDay(sess, day))
}

func (handler *Handler) handleRecordProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.recordProgress")
	defer span.End()

	sess, ok := handler.session(w, r)
	if !ok {
		return
	}

	var req RecordProgressRequest
	if err := decodeJSONBody(r, &req); err != nil {
		log.Tracef("record progress, decode request: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "Invalid request.")
		return
	}

	snap, err := handler.aggregator.RecordExerciseCompletion(ctx, sess, req.ExerciseName, req.Day, req.Completed)
	if err != nil {
		handler.writeError(w, err)
		return
	}

	handler.writeSnapshot(w, sess, snap)
}

func (handler *Handler) handleRecordWeight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.recordWeight")
	defer span.End()

	sess, ok := handler.session(w, r)
	if !ok {
		return
	}

	var req RecordWeightRequest
	if err := decodeJSONBody(r, &req); err != nil {
		log.Tracef("record weight, decode request: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "Please enter a valid weight.")
		return
	}

	snap, err := handler.aggregator.RecordWeight(ctx, sess, req.Weight)
	if err != nil {
		handler.writeError(w, err)
		return
	}

	handler.writeSnapshot(w, sess, snap)
}

func (handler *Handler) handleRegeneratePlans(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.regeneratePlans")
	defer span.End()

	sess, ok := handler.session(w, r)
	if !ok {
		return
	}

	var req RegeneratePlansRequest
	if err := decodeJSONBody(r, &req); err != nil {
		log.Tracef("regenerate plans, decode request: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "Invalid request.")
		return
	}

	planReq := models.PlanRequest{
		DurationDays:     req.DurationDays,
		WorkoutIntensity: req.WorkoutIntensity,
		IncludeWorkout:   req.IncludeWorkout == nil || *req.IncludeWorkout,
		IncludeNutrition: req.IncludeNutrition == nil || *req.IncludeNutrition,
	}
	snap, err := handler.aggregator.RegeneratePlans(ctx, sess, planReq)
	if err != nil {
		handler.writeError(w, err)
		return
	}

	handler.writeSnapshot(w, sess, snap)
}

func (handler *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sess, err := handler.sessions.Get(mux.Vars(r)["sid"])
	if err != nil {
		handler.writeError(w, err)
		return nil, false
	}
	return sess, true
}

func (handler *Handler) writeSnapshot(w http.ResponseWriter, sess *Session, snap *Snapshot) {
	pkg.WriteJSONResponse(w, http.StatusOK, SessionResponse{SessionID: sess.ID(), Snapshot: snap})
}

func (handler *Handler) writeError(w http.ResponseWriter, err error) {
	pkg.WriteJSONError(w, ErrorStatusCode(err), Notice(err))
}

// ErrorStatusCode maps aggregator errors to HTTP status codes.
func ErrorStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrPrecondition):
		return http.StatusBadRequest
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrStaleResponse):
		return http.StatusConflict
	case errors.Is(err, ErrLoadFailed), errors.Is(err, ErrMutationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSONBody(r *http.Request, v any) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), pkg.ContentType.JSON) {
		return errors.New("invalid content type")
	}
	return json.NewDecoder(r.Body).Decode(v)
}
