package handlers

import (
	"net/http"
	"strconv"
	"time"

	"taskmanager/internal/domain"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetTasks(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found"})
		return
	}

	tasks, err := h.Tasks.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tasks retrieved successfully",
		"tasks":   tasks,
	})
}

func (h *Handler) AddTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found"})
		return
	}

	var in service.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid request body"})
		return
	}

	taskID, err := h.Tasks.Create(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task saved successfully",
		"taskId":  taskID,
	})
}

func (h *Handler) EditTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found"})
		return
	}

	var in service.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid request body"})
		return
	}

	if err := h.Tasks.Update(c.Request.Context(), userID, c.Param("taskId"), in); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task Updated successfully"})
}

func (h *Handler) RemoveTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found"})
		return
	}

	if err := h.Tasks.Delete(c.Request.Context(), userID, c.Param("taskId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

type deleteTasksRequest struct {
	TaskIDs []any `json:"taskIds"`
}

func (h *Handler) DeleteTasks(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found"})
		return
	}

	var req deleteTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid request body"})
		return
	}

	// ids may arrive as JSON numbers or strings; fractional numbers
	// must stay fractional so they are skipped as malformed, never
	// truncated onto a real id
	ids := make([]string, 0, len(req.TaskIDs))
	for _, raw := range req.TaskIDs {
		switch v := raw.(type) {
		case string:
			ids = append(ids, v)
		case float64:
			ids = append(ids, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			ids = append(ids, "")
		}
	}

	res, err := h.Tasks.DeleteMany(c.Request.Context(), userID, ids)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tasks deleted successfully",
		"deleted": res.Deleted,
		"skipped": res.Skipped,
	})
}

// Dashboard derives the priority summary from the caller's task list at
// request time.
func (h *Handler) Dashboard(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found"})
		return
	}

	tasks, err := h.Tasks.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dashboard generated successfully",
		"summary": service.Summarize(tasks, time.Now()),
	})
}
