package audit

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskhive/taskhive/internal/access"
	"github.com/taskhive/taskhive/internal/platform/httpx"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// Lister reads back recorded events.
type Lister interface {
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// Handler exposes the audit trail to administrators.
type Handler struct {
	logger *slog.Logger
	lister Lister
	guard  access.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, lister Lister, guard access.Middleware) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, lister: lister, guard: guard}
}

// MountRoutes registers audit routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.guard.Authenticate)
	r.Use(h.guard.RequireAtLeast(access.RoleAdmin))
	r.Get("/", h.listEvents)
}

type eventResponse struct {
	ID        int64  `json:"id"`
	ActorID   int64  `json:"actor_id"`
	Action    string `json:"action"`
	Detail    string `json:"detail"`
	CreatedAt string `json:"created_at"`
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxListLimit {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid limit")
			return
		}
		limit = parsed
	}
	events, err := h.lister.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("list audit events", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]eventResponse, len(events))
	for i, ev := range events {
		out[i] = eventResponse{
			ID:        ev.ID,
			ActorID:   ev.ActorID,
			Action:    ev.Action,
			Detail:    ev.Detail,
			CreatedAt: ev.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
	}
	httpx.JSON(w, http.StatusOK, out)
}
