package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"sectorgen/internal/shared/errors"
	"sectorgen/internal/shared/response"
	"sectorgen/internal/universe"
)

type UniverseHandler struct {
	service *universe.Service
	logger  *slog.Logger
}

func NewUniverseHandler(service *universe.Service, logger *slog.Logger) *UniverseHandler {
	return &UniverseHandler{
		service: service,
		logger:  logger,
	}
}

// GetUniverses handles GET /api/universes
func (h *UniverseHandler) GetUniverses(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_universes")

	universes, err := h.service.ListUniverses(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, universes)
}

// GetUniverse handles GET /api/universes/{id}
func (h *UniverseHandler) GetUniverse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_universe")

	id, err := pathID(r, "id", "universe")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	u, err := h.service.GetUniverse(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, u)
}

// GetSector handles GET /api/sectors/{id}
func (h *UniverseHandler) GetSector(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_sector")

	id, err := pathID(r, "id", "sector")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	sector, err := h.service.GetSector(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, sector)
}

// FindRoute handles GET /api/universes/{id}/route?from=&to=&max_depth=
func (h *UniverseHandler) FindRoute(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "find_route")

	universeID, err := pathID(r, "id", "universe")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	query := r.URL.Query()
	from, err := queryInt(query.Get("from"), "from", true)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	to, err := queryInt(query.Get("to"), "to", true)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	maxDepth, err := queryInt(query.Get("max_depth"), "max_depth", false)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if maxDepth < 0 {
		response.Error(w, r, logger, errors.Validation("max_depth must not be negative"))
		return
	}

	route, err := h.service.FindRoute(r.Context(), universeID, from, to, maxDepth)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, route)
}

func pathID(r *http.Request, name, entity string) (int, error) {
	raw := r.PathValue(name)
	if raw == "" {
		return 0, errors.Validationf("%s ID is required", entity)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.WrapValidation("invalid "+entity+" ID format", err)
	}
	if id <= 0 {
		return 0, errors.Validationf("%s ID must be positive", entity)
	}
	return id, nil
}

func queryInt(raw, name string, required bool) (int, error) {
	if raw == "" {
		if required {
			return 0, errors.Validationf("query parameter %q is required", name)
		}
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.WrapValidation("invalid "+name+" parameter", err)
	}
	return v, nil
}
