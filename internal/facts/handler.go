package facts

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/taskhive/taskhive/internal/access"
	"github.com/taskhive/taskhive/internal/platform/httpx"
)

// Handler manages animal-fact endpoints.
type Handler struct {
	logger    *slog.Logger
	repo      RepositoryPort
	guard     access.Middleware
	validator *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, repo RepositoryPort, guard access.Middleware) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, repo: repo, guard: guard, validator: validator.New()}
}

// MountRoutes registers fact routes. Reads are public; curation needs
// at least the author role.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{animal}", h.listFacts)
	r.Get("/{animal}/random", h.randomFact)

	r.Group(func(r chi.Router) {
		r.Use(h.guard.Authenticate)
		r.Use(h.guard.RequireAtLeast(access.RoleAuthor))
		r.Post("/", h.createFact)
	})
}

type factResponse struct {
	ID      int64  `json:"id"`
	Animal  string `json:"animal"`
	Content string `json:"content"`
}

type createPayload struct {
	Animal  string `json:"animal" validate:"required"`
	Content string `json:"content" validate:"required,min=1,max=500"`
}

func presentFact(f Fact) factResponse {
	return factResponse{ID: f.ID, Animal: string(f.Animal), Content: f.Content}
}

func (h *Handler) listFacts(w http.ResponseWriter, r *http.Request) {
	animal, err := ParseAnimal(chi.URLParam(r, "animal"))
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no facts for that animal")
		return
	}
	facts, err := h.repo.ListByAnimal(r.Context(), animal)
	if err != nil {
		h.logger.Error("list facts", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]factResponse, len(facts))
	for i, f := range facts {
		out[i] = presentFact(f)
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) randomFact(w http.ResponseWriter, r *http.Request) {
	animal, err := ParseAnimal(chi.URLParam(r, "animal"))
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no facts for that animal")
		return
	}
	fact, err := h.repo.RandomByAnimal(r.Context(), animal)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, presentFact(fact))
}

func (h *Handler) createFact(w http.ResponseWriter, r *http.Request) {
	var payload createPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	animal, err := ParseAnimal(payload.Animal)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unknown animal")
		return
	}
	fact, err := h.repo.Insert(r.Context(), animal, payload.Content)
	if err != nil {
		h.logger.Error("create fact", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, presentFact(fact))
}
