package controllers

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// CreateExport queues a CSV export of a room's plans and waypoints and
// returns the job id for polling.
func CreateExport(c *gin.Context) {
	var req struct {
		Format string `json:"format"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid export payload"})
		return
	}

	job, err := exportsSvc.Queue(currentAccount(c), c.Param("room_id"), req.Format)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": job.JobID,
		"status": job.Status,
	})
}

// GetExport polls a job; once done it serves the file itself.
func GetExport(c *gin.Context) {
	job, err := exportsSvc.Fetch(currentAccount(c), c.Param("job_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if job.Status == "done" && job.FilePath != nil {
		c.FileAttachment(*job.FilePath, path.Base(*job.FilePath))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id": job.JobID,
		"status": job.Status,
		"error":  job.ErrorMsg,
	})
}
