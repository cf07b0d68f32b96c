package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/competence-backend/internal/domain"
	"github.com/yungbote/competence-backend/internal/http/response"
	"github.com/yungbote/competence-backend/internal/platform/apierr"
	"github.com/yungbote/competence-backend/internal/platform/logger"
	"github.com/yungbote/competence-backend/internal/services"
)

type CompetenceHandlerDeps struct {
	Log        *logger.Logger
	Competence services.CompetenceService
	Alerts     response.Alerts
}

type CompetenceHandler struct {
	log        *logger.Logger
	competence services.CompetenceService
	alerts     response.Alerts
}

func NewCompetenceHandlerWithDeps(deps CompetenceHandlerDeps) *CompetenceHandler {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &CompetenceHandler{
		log:        log.With("handler", "CompetenceHandler"),
		competence: deps.Competence,
		alerts:     deps.Alerts,
	}
}

// POST /api/competences
func (h *CompetenceHandler) Create(c *gin.Context) {
	var body domain.Competence
	if !bindBody(c, &body) {
		return
	}
	created, err := h.competence.Create(c.Request.Context(), &body)
	if err != nil {
		writeFailed(c, h.log, h.alerts, domain.EntityCompetence, err)
		return
	}
	h.alerts.Created(c, domain.EntityCompetence, created.ID)
	c.Header("Location", location("competences", created.ID))
	c.JSON(http.StatusCreated, created)
}

// PUT /api/competences/:id
func (h *CompetenceHandler) Update(c *gin.Context) {
	id, ok := writeID(c, h.alerts, domain.EntityCompetence)
	if !ok {
		return
	}
	var body domain.Competence
	if !bindBody(c, &body) {
		return
	}
	updated, err := h.competence.Update(c.Request.Context(), id, &body)
	if err != nil {
		writeFailed(c, h.log, h.alerts, domain.EntityCompetence, err)
		return
	}
	h.alerts.Updated(c, domain.EntityCompetence, updated.ID)
	response.RespondOK(c, updated)
}

// PATCH /api/competences/:id
// body: any subset of { "id", "name", "level" }; absent or null fields are kept.
func (h *CompetenceHandler) PartialUpdate(c *gin.Context) {
	id, ok := writeID(c, h.alerts, domain.EntityCompetence)
	if !ok {
		return
	}
	var body domain.Competence
	if !bindPatch(c, &body) {
		return
	}
	updated, err := h.competence.PartialUpdate(c.Request.Context(), id, &body)
	if err != nil {
		writeFailed(c, h.log, h.alerts, domain.EntityCompetence, err)
		return
	}
	h.alerts.Updated(c, domain.EntityCompetence, updated.ID)
	response.RespondOK(c, updated)
}

// GET /api/competences
func (h *CompetenceHandler) List(c *gin.Context) {
	rows, err := h.competence.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	if rows == nil {
		rows = []*domain.Competence{}
	}
	response.RespondOK(c, rows)
}

// GET /api/competences/:id
func (h *CompetenceHandler) Get(c *gin.Context) {
	id, ok := readID(c, domain.EntityCompetence)
	if !ok {
		return
	}
	row, found, err := h.competence.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	if !found {
		response.RespondError(c, http.StatusNotFound, apierr.CodeNotFound, fmt.Errorf("competence %d not found", id))
		return
	}
	response.RespondOK(c, row)
}

// DELETE /api/competences/:id
func (h *CompetenceHandler) Delete(c *gin.Context) {
	id, ok := writeID(c, h.alerts, domain.EntityCompetence)
	if !ok {
		return
	}
	if err := h.competence.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	h.alerts.Deleted(c, domain.EntityCompetence, id)
	c.Status(http.StatusNoContent)
}
