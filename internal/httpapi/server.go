package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gatrack/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	OpenUI() string
	CloseUI(id string) error
	Navigate(ctx context.Context, id string, req types.NavigateRequest) (types.TurnResponse, error)
	PageView(ctx context.Context, id string, req types.PageViewRequest) (types.TurnResponse, error)
	Command(ctx context.Context, id string, req types.CommandRequest) (types.TurnResponse, error)
	RenderPage(ctx context.Context, path string, query url.Values) (types.TurnResponse, error)
	Ready() bool
}

type handlers struct {
	svc Service
}

func NewMux(svc Service) http.Handler {
	h := &handlers{svc: svc}
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON and HTML responses
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		origins, methods, headers := corsDefaults()
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: methods,
			AllowedHeaders: headers,
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}

	r.Post("/ui", h.openUI)
	r.Delete("/ui/{id}", h.closeUI)
	r.Post("/ui/{id}/navigate", h.navigate)
	r.Post("/ui/{id}/pageview", h.pageView)
	r.Post("/ui/{id}/events", h.command)
	r.Get("/page/*", h.page)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("no routes"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// openUI godoc
// @Summary      Open a UI
// @Description  Opens a new UI with its own tracker and command queue.
// @Tags         ui
// @Produce      json
// @Success      201  {object}  types.OpenResponse
// @Router       /ui [post]
func (h *handlers) openUI(w http.ResponseWriter, r *http.Request) {
	id := h.svc.OpenUI()
	if lvl := requestLogLevel(r); lvl >= LevelInfo && zlog != nil {
		zlog.Info().Str("ui_id", id).Str("request_id", middleware.GetReqID(r.Context())).Msg("ui opened")
	}
	writeJSON(w, http.StatusCreated, types.OpenResponse{UIID: id})
}

// closeUI godoc
// @Summary      Close a UI
// @Tags         ui
// @Param        id   path  string  true  "UI id"
// @Success      204
// @Failure      404  {object}  types.ErrorResponse
// @Router       /ui/{id} [delete]
func (h *handlers) closeUI(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.CloseUI(chi.URLParam(r, "id")); err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// navigate godoc
// @Summary      Navigate a UI
// @Description  Activates the route at path. A page view is tracked automatically unless the route opts out.
// @Tags         ui
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "UI id"
// @Param        body  body  types.NavigateRequest  true  "Navigation"
// @Success      200  {object}  types.TurnResponse
// @Failure      400  {object}  types.ErrorResponse
// @Failure      404  {object}  types.ErrorResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /ui/{id}/navigate [post]
func (h *handlers) navigate(w http.ResponseWriter, r *http.Request) {
	serveTurn(w, r, "navigate", h.svc.Navigate)
}

// pageView godoc
// @Summary      Track a page view
// @Tags         ui
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "UI id"
// @Param        body  body  types.PageViewRequest  true  "Page view"
// @Success      200  {object}  types.TurnResponse
// @Failure      400  {object}  types.ErrorResponse
// @Failure      404  {object}  types.ErrorResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /ui/{id}/pageview [post]
func (h *handlers) pageView(w http.ResponseWriter, r *http.Request) {
	serveTurn(w, r, "pageview", h.svc.PageView)
}

// command godoc
// @Summary      Send a gtag command
// @Tags         ui
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "UI id"
// @Param        body  body  types.CommandRequest  true  "Command"
// @Success      200  {object}  types.TurnResponse
// @Failure      400  {object}  types.ErrorResponse
// @Failure      404  {object}  types.ErrorResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /ui/{id}/events [post]
func (h *handlers) command(w http.ResponseWriter, r *http.Request) {
	serveTurn(w, r, "events", h.svc.Command)
}

// page godoc
// @Summary      Render a page
// @Description  Opens a UI, navigates it to the requested path and returns an HTML page running the resulting client calls.
// @Tags         page
// @Produce      html
// @Param        path  path  string  true  "Route path"
// @Success      200
// @Failure      404  {object}  types.ErrorResponse
// @Router       /page/{path} [get]
func (h *handlers) page(w http.ResponseWriter, r *http.Request) {
	path := "/" + strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	start := time.Now()
	lvl := requestLogLevel(r)
	ctx, cancel := turnContext(r)
	defer cancel()
	resp, err := h.svc.RenderPage(ctx, path, r.URL.Query())
	if err != nil {
		if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
			return
		}
		status := statusFor(err)
		incTurnError(errorReason(err))
		logTurn(r, lvl, "page", resp.UIID, status, 0, start, err)
		writeJSONError(w, status, err.Error())
		return
	}
	body, err := renderPage(path, resp)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
	logTurn(r, lvl, "page", resp.UIID, http.StatusOK, len(resp.Calls), start, nil)
}

// serveTurn decodes a JSON request body, runs one UI turn and writes the
// resulting client calls.
func serveTurn[T any](w http.ResponseWriter, r *http.Request, op string, run func(context.Context, string, T) (types.TurnResponse, error)) {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// If exceeded size, MaxBytesReader may cause an error; still return 400 to avoid size leak details
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id := chi.URLParam(r, "id")
	start := time.Now()
	lvl := requestLogLevel(r)
	// Join server base context with request context so shutdown cancels work too.
	ctx, cancel := turnContext(r)
	defer cancel()
	resp, err := run(ctx, id, req)
	if err != nil {
		// If context was canceled (client disconnect), just return.
		if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
			return
		}
		status := statusFor(err)
		incTurnError(errorReason(err))
		logTurn(r, lvl, op, id, status, 0, start, err)
		writeJSONError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
	logTurn(r, lvl, op, id, http.StatusOK, len(resp.Calls), start, nil)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && zlog != nil {
		zlog.Error().Err(err).Msg("failed to encode response")
	}
}
