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

type CategoryHandlerDeps struct {
	Log      *logger.Logger
	Category services.CategoryService
	Alerts   response.Alerts
}

type CategoryHandler struct {
	log      *logger.Logger
	category services.CategoryService
	alerts   response.Alerts
}

func NewCategoryHandlerWithDeps(deps CategoryHandlerDeps) *CategoryHandler {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &CategoryHandler{
		log:      log.With("handler", "CategoryHandler"),
		category: deps.Category,
		alerts:   deps.Alerts,
	}
}

// POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var body domain.Category
	if !bindBody(c, &body) {
		return
	}
	created, err := h.category.Create(c.Request.Context(), &body)
	if err != nil {
		writeFailed(c, h.log, h.alerts, domain.EntityCategory, err)
		return
	}
	h.alerts.Created(c, domain.EntityCategory, created.ID)
	c.Header("Location", location("categories", created.ID))
	c.JSON(http.StatusCreated, created)
}

// PUT /api/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := writeID(c, h.alerts, domain.EntityCategory)
	if !ok {
		return
	}
	var body domain.Category
	if !bindBody(c, &body) {
		return
	}
	updated, err := h.category.Update(c.Request.Context(), id, &body)
	if err != nil {
		writeFailed(c, h.log, h.alerts, domain.EntityCategory, err)
		return
	}
	h.alerts.Updated(c, domain.EntityCategory, updated.ID)
	response.RespondOK(c, updated)
}

// PATCH /api/categories/:id
func (h *CategoryHandler) PartialUpdate(c *gin.Context) {
	id, ok := writeID(c, h.alerts, domain.EntityCategory)
	if !ok {
		return
	}
	var body domain.Category
	if !bindPatch(c, &body) {
		return
	}
	updated, err := h.category.PartialUpdate(c.Request.Context(), id, &body)
	if err != nil {
		writeFailed(c, h.log, h.alerts, domain.EntityCategory, err)
		return
	}
	h.alerts.Updated(c, domain.EntityCategory, updated.ID)
	response.RespondOK(c, updated)
}

// GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	rows, err := h.category.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	if rows == nil {
		rows = []*domain.Category{}
	}
	response.RespondOK(c, rows)
}

// GET /api/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := readID(c, domain.EntityCategory)
	if !ok {
		return
	}
	row, found, err := h.category.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	if !found {
		response.RespondError(c, http.StatusNotFound, apierr.CodeNotFound, fmt.Errorf("category %d not found", id))
		return
	}
	response.RespondOK(c, row)
}

// DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := writeID(c, h.alerts, domain.EntityCategory)
	if !ok {
		return
	}
	if err := h.category.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	h.alerts.Deleted(c, domain.EntityCategory, id)
	c.Status(http.StatusNoContent)
}
