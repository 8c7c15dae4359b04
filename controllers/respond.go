package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/planroomhq/planroom-server/middleware"
	"github.com/planroomhq/planroom-server/models"
	"github.com/planroomhq/planroom-server/services"
)

// Service handles, injected once at startup via Init.
var (
	accountsSvc *services.Accounts
	roomsSvc    *services.Rooms
	plansSvc    *services.Plans
	exportsSvc  *services.Exports
)

func Init(accounts *services.Accounts, rooms *services.Rooms, plans *services.Plans, exports *services.Exports) {
	accountsSvc = accounts
	roomsSvc = rooms
	plansSvc = plans
	exportsSvc = exports
}

func currentAccount(c *gin.Context) models.Account {
	return c.MustGet(middleware.CtxAccount).(models.Account)
}

// bindStrict decodes the JSON body rejecting any field outside the input
// struct, then runs the binding validators. A body carrying a
// server-controlled field (created_at, ids, ...) fails here instead of
// being silently filtered.
func bindStrict(c *gin.Context, out any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(out)
}

// respondError maps service errors onto HTTP statuses. Store failures are
// reported generically.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}
