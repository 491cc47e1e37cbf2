package httpapi

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"pricegenie/backend/internal/domain"
	"pricegenie/backend/internal/pricing"
	"pricegenie/backend/internal/service"
	"pricegenie/backend/internal/store"
)

const maxBodyBytes = 1 << 20

type API struct {
	service       *service.Service
	auth          *AuthManager
	allowedOrigin string
	loginLimiter  *keyedLimiter
	pinLimiter    *keyedLimiter
	genieLimiter  *keyedLimiter
	csrfSecret    []byte
}

func New(svc *service.Service, auth *AuthManager, allowedOrigin string) *API {
	csrfSecret := make([]byte, 32)
	if _, err := rand.Read(csrfSecret); err != nil {
		csrfSecret = []byte("csrf-fallback-secret-change-me!!")
	}
	return &API{
		service:       svc,
		auth:          auth,
		allowedOrigin: allowedOrigin,
		loginLimiter:  newKeyedLimiter(5, time.Minute),
		pinLimiter:    newKeyedLimiter(8, time.Minute),
		genieLimiter:  newKeyedLimiter(10, time.Minute),
		csrfSecret:    csrfSecret,
	}
}

// csrfTokenForHour computes a hex HMAC-SHA256 token for an hour bucket.
func (a *API) csrfTokenForHour(hourBucket int64) string {
	h := hmac.New(sha256.New, a.csrfSecret)
	fmt.Fprintf(h, "%d", hourBucket)
	return hex.EncodeToString(h.Sum(nil))
}

func (a *API) generateCSRFToken() string {
	bucket := time.Now().UTC().Truncate(time.Hour).Unix()
	return a.csrfTokenForHour(bucket)
}

// validateCSRFToken accepts tokens from the current or previous hour bucket.
func (a *API) validateCSRFToken(token string) bool {
	if token == "" {
		return false
	}
	currentBucket := time.Now().UTC().Truncate(time.Hour).Unix()
	prevBucket := currentBucket - 3600

	return hmac.Equal([]byte(token), []byte(a.csrfTokenForHour(currentBucket))) ||
		hmac.Equal([]byte(token), []byte(a.csrfTokenForHour(prevBucket)))
}

func (a *API) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", a.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", a.handleLogin)
		r.Get("/auth/csrf-token", a.handleCSRFToken)

		r.Group(func(r chi.Router) {
			r.Use(a.requireAuth(domain.RoleAdmin, domain.RolePlanner, domain.RoleViewer))

			r.Get("/profiles", a.handleListProfiles)
			r.Post("/profiles", a.handleCreateProfile)
			r.Post("/profiles/import", a.handleImportProfile)

			r.Route("/profiles/{id}", func(r chi.Router) {
				r.Get("/", a.handleGetProfile)
				r.Patch("/", a.handleUpdateProfile)
				r.With(a.requireAuth(domain.RoleAdmin)).Delete("/", a.handleDeleteProfile)
				r.Get("/summary", a.handleSummary)

				r.Put("/costing", a.handleReplaceCosting)
				r.Post("/costing", a.handleAddCostingItem)
				r.Delete("/costing", a.handleClearCosting)
				r.Patch("/costing/{index}", a.handleUpdateCostItem)
				r.Delete("/costing/{index}", a.handleRemoveCostingItem)
				r.Put("/opex", a.handleReplaceOPEX)
				r.Put("/capex", a.handleReplaceCAPEX)

				r.Post("/simulation", a.handleSimulation)
				r.Patch("/multipliers", a.handleMultipliers)

				r.Post("/genie", a.handleRequestGenie)
				r.Put("/genie", a.handleApplyGenie)
				r.Delete("/genie", a.handleClearGenie)
				r.Post("/genie/sync", a.handleSyncGenie)
				r.Get("/genie/insight", a.handleGenieInsight)

				r.Get("/prompt", a.handlePrompt)
				r.Post("/finalize", a.handleFinalize)
				r.Get("/snapshots", a.handleListSnapshots)
				r.Post("/snapshots", a.handleSaveSnapshot)
			})

			r.Group(func(r chi.Router) {
				r.Use(a.requireAuth(domain.RoleAdmin))
				r.Get("/audit-logs", a.handleAuditLogs)
				r.Get("/users", a.handleListUsers)
				r.Post("/users", a.handleCreateUser)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, errors.New("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeMethodNotAllowed(w)
	})

	return a.withMiddleware(r)
}

// requireAuth authenticates the bearer token and restricts access to roles.
func (a *API) requireAuth(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := service.ActorFromContext(r.Context())
			if !ok {
				authorization := strings.TrimSpace(r.Header.Get("Authorization"))
				if !strings.HasPrefix(strings.ToLower(authorization), "bearer ") {
					writeError(w, http.StatusUnauthorized, errors.New("missing bearer token"))
					return
				}

				token := strings.TrimSpace(authorization[len("Bearer "):])
				parsed, err := a.auth.ParseToken(token)
				if err != nil {
					writeError(w, http.StatusUnauthorized, err)
					return
				}
				actor = parsed
			}

			if len(roles) > 0 && !isRoleAllowed(actor.Role, roles) {
				writeError(w, http.StatusForbidden, errors.New("forbidden role"))
				return
			}

			next.ServeHTTP(w, r.WithContext(service.WithActor(r.Context(), actor)))
		})
	}
}

func isRoleAllowed(role string, allowed []string) bool {
	for _, allow := range allowed {
		if role == allow {
			return true
		}
	}
	return false
}

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !a.loginLimiter.Allow(clientKey(r)) {
		writeError(w, http.StatusTooManyRequests, errors.New("too many login attempts"))
		return
	}

	var req domain.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp, err := a.auth.Login(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleCSRFToken returns a stateless token that clients send back in the
// X-CSRF-Token header on mutating requests.
func (a *API) handleCSRFToken(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"csrf_token": a.generateCSRFToken(),
	})
}

var csrfExemptPaths = []string{
	"/api/v1/auth/login",
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// checkCSRF writes a 403 and returns false when a mutating request lacks a
// valid token.
func (a *API) checkCSRF(w http.ResponseWriter, r *http.Request) bool {
	if !isMutating(r.Method) {
		return true
	}
	for _, exempt := range csrfExemptPaths {
		if r.URL.Path == exempt {
			return true
		}
	}
	token := strings.TrimSpace(r.Header.Get("X-CSRF-Token"))
	if !a.validateCSRFToken(token) {
		writeError(w, http.StatusForbidden, errors.New("missing or invalid CSRF token"))
		return false
	}
	return true
}

func (a *API) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	limit := parsePositiveLimit(r.URL.Query().Get("limit"), 100, 500)
	profiles, err := a.service.ListProfiles(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profiles": profiles})
}

func (a *API) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req domain.ProfileCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	record, err := a.service.CreateProfile(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"profile": record})
}

func (a *API) handleImportProfile(w http.ResponseWriter, r *http.Request) {
	raw, ok := readBody(w, r)
	if !ok {
		return
	}
	record, err := a.service.ImportProfile(r.Context(), raw)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": record})
}

func (a *API) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	record, err := a.service.GetProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": record})
}

func (a *API) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req domain.ProfileUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	record, err := a.service.UpdateDetails(r.Context(), chi.URLParam(r, "id"), req)
	writeProfile(w, record, err)
}

func (a *API) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	if !a.pinLimiter.Allow("pin:delete:" + clientKey(r)) {
		writeError(w, http.StatusTooManyRequests, errors.New("too many manager pin attempts"))
		return
	}

	var req domain.ProfileDeleteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !a.auth.ValidateManagerPIN(req.ManagerPIN) {
		writeError(w, http.StatusForbidden, errors.New("invalid manager pin"))
		return
	}

	if err := a.service.DeleteProfile(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.service.GetSummary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"summary": summary})
}

func (a *API) handleReplaceCosting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []domain.CostItemRequest `json:"items"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	record, err := a.service.ReplaceCosting(r.Context(), chi.URLParam(r, "id"), req.Items)
	writeProfile(w, record, err)
}

func (a *API) handleAddCostingItem(w http.ResponseWriter, r *http.Request) {
	var req domain.CostItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	record, err := a.service.AddCostingItem(r.Context(), chi.URLParam(r, "id"), req)
	writeProfile(w, record, err)
}

func (a *API) handleClearCosting(w http.ResponseWriter, r *http.Request) {
	record, err := a.service.ClearCosting(r.Context(), chi.URLParam(r, "id"))
	writeProfile(w, record, err)
}

func (a *API) handleUpdateCostItem(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req domain.CostItemUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	record, err := a.service.UpdateCostItem(r.Context(), chi.URLParam(r, "id"), index, req)
	writeProfile(w, record, err)
}

func (a *API) handleRemoveCostingItem(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	record, err := a.service.RemoveCostingItem(r.Context(), chi.URLParam(r, "id"), index)
	writeProfile(w, record, err)
}

func (a *API) handleReplaceOPEX(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []pricing.OPEXItem `json:"items"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	record, err := a.service.ReplaceOPEX(r.Context(), chi.URLParam(r, "id"), req.Items)
	writeProfile(w, record, err)
}

func (a *API) handleReplaceCAPEX(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []pricing.CAPEXItem `json:"items"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	record, err := a.service.ReplaceCAPEX(r.Context(), chi.URLParam(r, "id"), req.Items)
	writeProfile(w, record, err)
}

func (a *API) handleSimulation(w http.ResponseWriter, r *http.Request) {
	var req domain.SimulationRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	record, err := a.service.SetSimulation(r.Context(), chi.URLParam(r, "id"), req)
	writeProfile(w, record, err)
}

func (a *API) handleMultipliers(w http.ResponseWriter, r *http.Request) {
	var req domain.MultipliersRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	record, err := a.service.UpdateGlobalMultipliers(r.Context(), chi.URLParam(r, "id"), req)
	writeProfile(w, record, err)
}

func (a *API) handleRequestGenie(w http.ResponseWriter, r *http.Request) {
	if !a.genieLimiter.Allow("genie:" + clientKey(r)) {
		writeError(w, http.StatusTooManyRequests, errors.New("too many genie requests"))
		return
	}
	var req domain.GenieRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	record, err := a.service.RequestGenie(r.Context(), chi.URLParam(r, "id"), req)
	writeProfile(w, record, err)
}

// handleApplyGenie attaches a payload document supplied in the body. Pass
// ?sync=true to copy the suggested item multipliers as well.
func (a *API) handleApplyGenie(w http.ResponseWriter, r *http.Request) {
	raw, ok := readBody(w, r)
	if !ok {
		return
	}
	syncMultipliers, _ := strconv.ParseBool(r.URL.Query().Get("sync"))
	record, err := a.service.ApplyGeniePayload(r.Context(), chi.URLParam(r, "id"), raw, syncMultipliers)
	writeProfile(w, record, err)
}

func (a *API) handleClearGenie(w http.ResponseWriter, r *http.Request) {
	record, err := a.service.ClearGenie(r.Context(), chi.URLParam(r, "id"))
	writeProfile(w, record, err)
}

func (a *API) handleSyncGenie(w http.ResponseWriter, r *http.Request) {
	record, err := a.service.SyncGenieMultipliers(r.Context(), chi.URLParam(r, "id"))
	writeProfile(w, record, err)
}

func (a *API) handleGenieInsight(w http.ResponseWriter, r *http.Request) {
	insight, err := a.service.GenieInsight(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insight)
}

func (a *API) handlePrompt(w http.ResponseWriter, r *http.Request) {
	prompt, err := a.service.ExportPrompt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, prompt)
}

func (a *API) handleFinalize(w http.ResponseWriter, r *http.Request) {
	record, err := a.service.Finalize(r.Context(), chi.URLParam(r, "id"))
	writeProfile(w, record, err)
}

func (a *API) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := parsePositiveLimit(r.URL.Query().Get("limit"), 50, 200)
	history, err := a.service.ListSnapshots(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"snapshots": history})
}

func (a *API) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	var req domain.SnapshotCreateRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	snap, err := a.service.SaveSnapshot(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"snapshot": snap})
}

func (a *API) handleAuditLogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from, err := parseOptionalTime(query.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	to, err := parseOptionalTime(query.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	limit := parsePositiveLimit(query.Get("limit"), 100, 500)

	logs, err := a.service.ListAuditLogs(r.Context(), from, to, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"logs": logs})
}

func (a *API) handleListUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"users": a.auth.ListUsers(r.Context())})
}

func (a *API) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req domain.UserCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	user, err := a.auth.CreateUser(r.Context(), req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrUserExists) {
			status = http.StatusConflict
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

func (a *API) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Access-Control-Allow-Origin", a.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-CSRF-Token")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
		w.Header().Set("Vary", "Origin")

		if isMutating(r.Method) && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if !a.checkCSRF(w, r) {
			return
		}

		startedAt := time.Now()
		next.ServeHTTP(w, r)
		log.Info().Str("component", "http").
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(startedAt)).
			Msg("request")
	})
}

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return err
	}
	return nil
}

// decodeOptionalJSON is decodeJSON that accepts an empty body.
func decodeOptionalJSON(r *http.Request, dest any) error {
	if err := decodeJSON(r, dest); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// readBody reads the raw request body, answering 413 when it exceeds the
// size limit.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeServiceError(w, err)
		} else {
			writeError(w, http.StatusBadRequest, err)
		}
		return nil, false
	}
	return raw, true
}

func parseIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return 0, errors.New("cost item index must be an integer")
	}
	return index, nil
}

func parseOptionalTime(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", trimmed); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q, use RFC3339 or YYYY-MM-DD", trimmed)
}

func parsePositiveLimit(raw string, fallback int, max int) int {
	limit := fallback
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" {
		if parsed, err := strconv.Atoi(trimmed); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if max > 0 && limit > max {
		return max
	}
	return limit
}

func writeProfile(w http.ResponseWriter, record domain.ProfileRecord, err error) {
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": record})
}

// serviceErrorStatus maps domain errors onto HTTP status codes.
func serviceErrorStatus(err error) int {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, pricing.ErrInvalidPayload):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrGenieUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, store.ErrInvalidInput),
		errors.Is(err, pricing.ErrValidation),
		errors.Is(err, pricing.ErrIndexOutOfRange),
		errors.Is(err, pricing.ErrEmptyList),
		errors.Is(err, pricing.ErrInvalidMultiplier),
		errors.Is(err, pricing.ErrInvalidValue),
		errors.Is(err, pricing.ErrMissingGenieData),
		errors.Is(err, pricing.ErrMissingField):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeServiceError(w http.ResponseWriter, err error) {
	writeError(w, serviceErrorStatus(err), err)
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

// writeError hides the message of 5xx errors from clients.
func writeError(w http.ResponseWriter, status int, err error) {
	msg := err.Error()
	if status >= 500 {
		log.Error().Err(err).Str("component", "http").Int("status", status).Msg("internal error")
		msg = "internal server error"
		if status == http.StatusServiceUnavailable {
			msg = "service temporarily unavailable"
		}
	}
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
