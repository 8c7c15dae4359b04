package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/planroomhq/planroom-server/utils"
)

// UploadFile stores a plan attachment in the object storage bucket and
// returns its public URL.
func UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "file is required"})
		return
	}

	publicURL, err := utils.UploadToSupabase(fileHeader, uuid.NewString())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": publicURL})
}
