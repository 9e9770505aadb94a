package http

import (
	"fmt"
	"net/http"

	"task-tracker/internal/core/domain/entities"
	"task-tracker/internal/core/domain/exceptions"
	"task-tracker/internal/core/ports"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service ports.TaskUseCases
	log     *zap.Logger
}

func NewHandler(service ports.TaskUseCases, log *zap.Logger) *Handler {
	if log == nil {
		panic("logger is nil")
	}
	if service == nil {
		log.Fatal("task service is nil")
	}
	return &Handler{service: service, log: log}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ListTasks(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ListTasks(c.Request.Context(), c.Query("q")))
}

func (h *Handler) CreateTask(c *gin.Context) {
	task, err := h.service.CreateTask(c.Request.Context())
	if err != nil {
		h.fail(c, "create task", err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	id := c.Param("id")
	var req TaskPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, "update task", fmt.Errorf("%w: %v", exceptions.ErrInvalidPatch, err))
		return
	}
	patch, err := req.ToEntity()
	if err != nil {
		h.fail(c, "update task", err)
		return
	}
	if err := h.service.UpdateTask(c.Request.Context(), id, patch); err != nil {
		h.fail(c, "update task", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	if err := h.service.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete task", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Dashboard(c.Request.Context(), c.Query("q")))
}

// Report streams the export as an attachment under its fixed file name.
func (h *Handler) Report(c *gin.Context) {
	format, err := entities.ParseReportFormat(c.Param("format"))
	if err != nil {
		h.fail(c, "export report", err)
		return
	}
	report, err := h.service.Export(c.Request.Context(), format)
	if err != nil {
		h.fail(c, "export report", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.Name))
	c.Data(http.StatusOK, report.ContentType, report.Data)
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	code := statusCode(err)
	if code >= http.StatusInternalServerError {
		h.log.Error("http: "+op+" failed", zap.Error(err))
	} else {
		h.log.Warn("http: "+op+" rejected", zap.Error(err))
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

func statusCode(err error) int {
	if exceptions.IsInvalidInput(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
