package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planroomhq/planroom-server/services"
)

// Signup creates a new account.
func Signup(c *gin.Context) {
	var req services.SignupInput
	if err := bindStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid signup payload", "error": err.Error()})
		return
	}

	account, err := accountsSvc.Register(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": account})
}

// Me returns the authenticated account.
func Me(c *gin.Context) {
	account := currentAccount(c)
	c.JSON(http.StatusOK, gin.H{"data": account})
}
