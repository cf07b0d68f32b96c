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

type EmployeeHandlerDeps struct {
	Log      *logger.Logger
	Employee services.EmployeeService
	Alerts   response.Alerts
}

type EmployeeHandler struct {
	log      *logger.Logger
	employee services.EmployeeService
	alerts   response.Alerts
}

func NewEmployeeHandlerWithDeps(deps EmployeeHandlerDeps) *EmployeeHandler {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &EmployeeHandler{
		log:      log.With("handler", "EmployeeHandler"),
		employee: deps.Employee,
		alerts:   deps.Alerts,
	}
}

// POST /api/employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	var body domain.Employee
	if !bindBody(c, &body) {
		return
	}
	created, err := h.employee.Create(c.Request.Context(), &body)
	if err != nil {
		writeFailed(c, h.log, h.alerts, domain.EntityEmployee, err)
		return
	}
	h.alerts.Created(c, domain.EntityEmployee, created.ID)
	c.Header("Location", location("employees", created.ID))
	c.JSON(http.StatusCreated, created)
}

// PUT /api/employees/:id
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := writeID(c, h.alerts, domain.EntityEmployee)
	if !ok {
		return
	}
	var body domain.Employee
	if !bindBody(c, &body) {
		return
	}
	updated, err := h.employee.Update(c.Request.Context(), id, &body)
	if err != nil {
		writeFailed(c, h.log, h.alerts, domain.EntityEmployee, err)
		return
	}
	h.alerts.Updated(c, domain.EntityEmployee, updated.ID)
	response.RespondOK(c, updated)
}

// PATCH /api/employees/:id
func (h *EmployeeHandler) PartialUpdate(c *gin.Context) {
	id, ok := writeID(c, h.alerts, domain.EntityEmployee)
	if !ok {
		return
	}
	var body domain.Employee
	if !bindPatch(c, &body) {
		return
	}
	updated, err := h.employee.PartialUpdate(c.Request.Context(), id, &body)
	if err != nil {
		writeFailed(c, h.log, h.alerts, domain.EntityEmployee, err)
		return
	}
	h.alerts.Updated(c, domain.EntityEmployee, updated.ID)
	response.RespondOK(c, updated)
}

// GET /api/employees
func (h *EmployeeHandler) List(c *gin.Context) {
	rows, err := h.employee.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	if rows == nil {
		rows = []*domain.Employee{}
	}
	response.RespondOK(c, rows)
}

// GET /api/employees/:id
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := readID(c, domain.EntityEmployee)
	if !ok {
		return
	}
	row, found, err := h.employee.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	if !found {
		response.RespondError(c, http.StatusNotFound, apierr.CodeNotFound, fmt.Errorf("employee %d not found", id))
		return
	}
	response.RespondOK(c, row)
}

// DELETE /api/employees/:id
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := writeID(c, h.alerts, domain.EntityEmployee)
	if !ok {
		return
	}
	if err := h.employee.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	h.alerts.Deleted(c, domain.EntityEmployee, id)
	c.Status(http.StatusNoContent)
}
