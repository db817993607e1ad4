package handlers

import (
	"net/http"

	"production_control/internal/services"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobService services.JobService
}

func NewJobHandler(jobService services.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// GetJob serves the poll endpoint for tracked async operations.
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID := c.Param("job_id")

	record, err := h.jobService.Get(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	c.JSON(http.StatusOK, record)
}
