package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planroomhq/planroom-server/models"
	"github.com/planroomhq/planroom-server/services"
)

// ListRooms returns the rooms the caller holds an active membership in.
func ListRooms(c *gin.Context) {
	rooms, err := roomsSvc.List(currentAccount(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rooms})
}

// GetRoom fetches a single room by id. Existence is the only check here.
func GetRoom(c *gin.Context) {
	room, err := roomsSvc.Fetch(currentAccount(c), c.Param("room_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": room})
}

// CreateRoom creates a room owned by the caller. The strict bind rejects
// any field outside CreateRoomInput, so server-controlled columns cannot
// be set from the outside.
func CreateRoom(c *gin.Context) {
	var req services.CreateRoomInput
	if err := bindStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid room payload", "error": err.Error()})
		return
	}

	room, err := roomsSvc.Create(currentAccount(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": room})
}

// DeleteRoom removes a room and everything attached to it. Admins only.
func DeleteRoom(c *gin.Context) {
	roomID := c.Param("room_id")
	if err := roomsSvc.Delete(currentAccount(c), roomID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "room deleted"})
}

// ExitRoom drops the caller's own membership. Succeeds whether or not the
// caller was a member.
func ExitRoom(c *gin.Context) {
	if err := roomsSvc.Exit(currentAccount(c), c.Param("room_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "room exited"})
}

// JoinRoom adds the caller to a room.
func JoinRoom(c *gin.Context) {
	var req struct {
		Authority models.Authority `json:"authority"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid join payload"})
		return
	}

	ur, err := roomsSvc.Join(currentAccount(c), c.Param("room_id"), req.Authority)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": ur})
}

// GetRoomParticipants lists a room's active members.
func GetRoomParticipants(c *gin.Context) {
	participants, err := roomsSvc.Participants(currentAccount(c), c.Param("room_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": participants})
}
