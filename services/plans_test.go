package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planroomhq/planroom-server/models"
	"github.com/planroomhq/planroom-server/store/memstore"
)

func TestCreatePlanEncryptsDescription(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	plans := NewPlans(st, rooms, testCodec(t))
	alice := seedAccount(t, st, "alice")

	room, err := rooms.Create(alice, CreateRoomInput{RoomName: "trip"})
	require.NoError(t, err)

	const description = "meet at the north gate at 6am"
	view, err := plans.Create(alice, room.RoomID, CreatePlanInput{PlanName: "day one", PlanDescription: description})
	require.NoError(t, err)
	assert.Equal(t, description, view.PlanDescription)

	// the stored row holds ciphertext only
	stored, err := st.Plans().Find(view.PlanID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PlanDescriptionSecure)
	assert.NotContains(t, stored.PlanDescriptionSecure, description)
}

func TestListPlansDecryptsForMembers(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	plans := NewPlans(st, rooms, testCodec(t))
	alice := seedAccount(t, st, "alice")
	bob := seedAccount(t, st, "bob")

	room, err := rooms.Create(alice, CreateRoomInput{RoomName: "trip"})
	require.NoError(t, err)
	_, err = rooms.Join(bob, room.RoomID, models.AuthorityUser)
	require.NoError(t, err)

	_, err = plans.Create(alice, room.RoomID, CreatePlanInput{PlanName: "day one", PlanDescription: "secret route"})
	require.NoError(t, err)

	views, err := plans.ListForRoom(bob, room.RoomID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "secret route", views[0].PlanDescription)
}

func TestPlansRequireMembership(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	plans := NewPlans(st, rooms, testCodec(t))
	alice := seedAccount(t, st, "alice")
	outsider := seedAccount(t, st, "outsider")

	room, err := rooms.Create(alice, CreateRoomInput{RoomName: "trip"})
	require.NoError(t, err)

	_, err = plans.Create(outsider, room.RoomID, CreatePlanInput{PlanName: "sneaky"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = plans.ListForRoom(outsider, room.RoomID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = plans.ListForRoom(alice, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddWaypointSequencing(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	plans := NewPlans(st, rooms, testCodec(t))
	alice := seedAccount(t, st, "alice")

	room, err := rooms.Create(alice, CreateRoomInput{RoomName: "trip"})
	require.NoError(t, err)
	plan, err := plans.Create(alice, room.RoomID, CreatePlanInput{PlanName: "day one"})
	require.NoError(t, err)

	first, err := plans.AddWaypoint(alice, plan.PlanID, CreateWaypointInput{WaypointName: "start", Latitude: 10, Longitude: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, first.WaypointNumber)

	second, err := plans.AddWaypoint(alice, plan.PlanID, CreateWaypointInput{WaypointName: "camp", Latitude: 11, Longitude: 21})
	require.NoError(t, err)
	assert.Equal(t, 2, second.WaypointNumber)

	wps, err := plans.Waypoints(alice, plan.PlanID)
	require.NoError(t, err)
	assert.Len(t, wps, 2)
}

func TestWaypointsForMissingPlan(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	plans := NewPlans(st, rooms, testCodec(t))
	alice := seedAccount(t, st, "alice")

	_, err := plans.Waypoints(alice, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}
