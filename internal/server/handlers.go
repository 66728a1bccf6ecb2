package server

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"task-logger/internal/api"
	"task-logger/internal/config"
	"task-logger/internal/domain"
	"task-logger/internal/errors"

	"github.com/gin-gonic/gin"
)

type taskHandler struct {
	api          api.BusinessAPI
	readTimeout  time.Duration
	writeTimeout time.Duration
	now          func() time.Time
}

func newTaskHandler(businessAPI api.BusinessAPI, cfg *config.Config) *taskHandler {
	return &taskHandler{
		api:          businessAPI,
		readTimeout:  cfg.GetQueryTimeout(),
		writeTimeout: cfg.GetWriteTimeout(),
		now:          time.Now,
	}
}

func (h *taskHandler) readContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.readTimeout)
}

func (h *taskHandler) writeContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.writeTimeout)
}

// ListTasks serves GET /api/tasks, filtered by any of user, team, status, client, from, to
func (h *taskHandler) ListTasks(c *gin.Context) {
	ctx, cancel := h.readContext(c)
	defer cancel()

	logs, err := h.api.SearchTaskLogs(ctx, searchOptionsFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": logs})
}

func (h *taskHandler) GetTask(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := h.readContext(c)
	defer cancel()

	log, err := h.api.GetTaskLog(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": log})
}

func (h *taskHandler) CreateTask(c *gin.Context) {
	in, err := bindInput(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := h.writeContext(c)
	defer cancel()

	log, err := h.api.CreateTaskLog(ctx, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Task created successfully",
		"task":    log,
	})
}

func (h *taskHandler) UpdateTask(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	in, err := bindInput(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := h.writeContext(c)
	defer cancel()

	changes, err := h.api.UpdateTaskLog(ctx, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	if changes == 0 {
		respondTaskNotFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"changes": changes,
	})
}

func (h *taskHandler) DeleteTask(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := h.writeContext(c)
	defer cancel()

	changes, err := h.api.DeleteTaskLog(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if changes == 0 {
		respondTaskNotFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"changes": changes,
	})
}

// GetStats serves the (team, status) summaries and their totals
func (h *taskHandler) GetStats(c *gin.Context) {
	ctx, cancel := h.readContext(c)
	defer cancel()

	stats, err := h.api.GetStatistics(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stats":  stats.Groups,
		"totals": stats.Totals,
	})
}

// ExportCSV renders the whole export before writing so a failure can still be reported as JSON
func (h *taskHandler) ExportCSV(c *gin.Context) {
	ctx, cancel := h.readContext(c)
	defer cancel()

	var buf bytes.Buffer
	if err := h.api.ExportCSV(ctx, &buf); err != nil {
		respondError(c, err)
		return
	}

	filename := h.api.ExportFilename(h.now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *taskHandler) GetUsers(c *gin.Context) {
	ctx, cancel := h.readContext(c)
	defer cancel()

	data, err := h.api.GetReferenceData(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func parseID(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewInvalidInputError("id", raw, "must be a positive integer")
	}
	return id, nil
}

// bindInput decodes the request body. An empty body decodes to an input with every field absent.
func bindInput(c *gin.Context) (domain.TaskLogInput, error) {
	var in domain.TaskLogInput
	if err := c.ShouldBindJSON(&in); err != nil && !stderrors.Is(err, io.EOF) {
		return domain.TaskLogInput{}, errors.NewInvalidInputError("body", nil, "must be a JSON object with the task log fields")
	}
	return in, nil
}

func searchOptionsFromQuery(c *gin.Context) domain.SearchOptions {
	param := func(key string) *string {
		if value, ok := c.GetQuery(key); ok && value != "" {
			return &value
		}
		return nil
	}

	return domain.SearchOptions{
		User:   param("user"),
		Team:   param("team"),
		Status: param("status"),
		Client: param("client"),
		From:   param("from"),
		To:     param("to"),
	}
}
