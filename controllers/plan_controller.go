package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planroomhq/planroom-server/services"
)

// CreatePlan adds a plan to a room the caller belongs to. The description
// is encrypted before it is stored; the response carries the plaintext
// view only.
func CreatePlan(c *gin.Context) {
	var req services.CreatePlanInput
	if err := bindStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid plan payload", "error": err.Error()})
		return
	}

	plan, err := plansSvc.Create(currentAccount(c), c.Param("room_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": plan})
}

// ListPlans returns the decrypted plans of a room the caller belongs to.
func ListPlans(c *gin.Context) {
	plans, err := plansSvc.ListForRoom(currentAccount(c), c.Param("room_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": plans})
}

// AddWaypoint appends a waypoint to a plan.
func AddWaypoint(c *gin.Context) {
	var req services.CreateWaypointInput
	if err := bindStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid waypoint payload", "error": err.Error()})
		return
	}

	wp, err := plansSvc.AddWaypoint(currentAccount(c), c.Param("plan_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": wp})
}

// ListWaypoints returns a plan's waypoints in sequence order.
func ListWaypoints(c *gin.Context) {
	wps, err := plansSvc.Waypoints(currentAccount(c), c.Param("plan_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": wps})
}
