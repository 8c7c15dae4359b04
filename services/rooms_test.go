package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planroomhq/planroom-server/models"
	"github.com/planroomhq/planroom-server/secure"
	"github.com/planroomhq/planroom-server/store"
	"github.com/planroomhq/planroom-server/store/memstore"
)

func testCodec(t *testing.T) *secure.Codec {
	t.Helper()
	codec, err := secure.NewCodec(secure.DeriveKey([]byte("test-secret"), []byte("test-salt")))
	require.NoError(t, err)
	return codec
}

func seedAccount(t *testing.T, st *memstore.Store, username string) models.Account {
	t.Helper()
	account := models.Account{
		AccountID:    uuid.NewString(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, st.Accounts().Create(&account))
	return account
}

func roomCount(t *testing.T, st *memstore.Store) int64 {
	t.Helper()
	n, err := st.Rooms().Count()
	require.NoError(t, err)
	return n
}

func TestCreateRoomMakesCreatorAdmin(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	actor := seedAccount(t, st, "alice")

	room, err := rooms.Create(actor, CreateRoomInput{RoomName: "basecamp"})
	require.NoError(t, err)
	require.NotEmpty(t, room.RoomID)
	assert.Equal(t, actor.AccountID, room.AccountID)

	ur, err := st.Memberships().Find(actor.AccountID, room.RoomID)
	require.NoError(t, err)
	assert.Equal(t, models.AuthorityAdmin, ur.Authority)
	assert.True(t, ur.Active)
}

func TestCreateRoomRejectsEmptyName(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	actor := seedAccount(t, st, "alice")

	_, err := rooms.Create(actor, CreateRoomInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.EqualValues(t, 0, roomCount(t, st))
}

func TestListRoomsMatchesActiveMemberships(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	alice := seedAccount(t, st, "alice")
	bob := seedAccount(t, st, "bob")

	room1, err := rooms.Create(alice, CreateRoomInput{RoomName: "room1"})
	require.NoError(t, err)
	_, err = rooms.Create(alice, CreateRoomInput{RoomName: "room2"})
	require.NoError(t, err)
	room3, err := rooms.Create(bob, CreateRoomInput{RoomName: "room3"})
	require.NoError(t, err)

	// bob also joins room1 at the lowest authority
	_, err = rooms.Join(bob, room1.RoomID, models.AuthorityUser)
	require.NoError(t, err)

	aliceRooms, err := rooms.List(alice)
	require.NoError(t, err)
	assert.Len(t, aliceRooms, 2)

	bobRooms, err := rooms.List(bob)
	require.NoError(t, err)
	assert.Len(t, bobRooms, 2)

	// exiting removes the room from the listing
	require.NoError(t, rooms.Exit(bob, room1.RoomID))
	bobRooms, err = rooms.List(bob)
	require.NoError(t, err)
	require.Len(t, bobRooms, 1)
	assert.Equal(t, room3.RoomID, bobRooms[0].RoomID)
}

func TestListRoomsEmptyWithoutMemberships(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	actor := seedAccount(t, st, "loner")

	got, err := rooms.List(actor)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetchRoomDoesNotRequireMembership(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	alice := seedAccount(t, st, "alice")
	bob := seedAccount(t, st, "bob")

	room, err := rooms.Create(alice, CreateRoomInput{RoomName: "open-house"})
	require.NoError(t, err)

	got, err := rooms.Fetch(bob, room.RoomID)
	require.NoError(t, err)
	assert.Equal(t, room.RoomID, got.RoomID)
}

func TestFetchRoomMissing(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	actor := seedAccount(t, st, "alice")

	_, err := rooms.Fetch(actor, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRoomCascades(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	plans := NewPlans(st, rooms, testCodec(t))
	alice := seedAccount(t, st, "alice")
	bob := seedAccount(t, st, "bob")

	room, err := rooms.Create(alice, CreateRoomInput{RoomName: "doomed"})
	require.NoError(t, err)
	_, err = rooms.Join(bob, room.RoomID, models.AuthorityMember)
	require.NoError(t, err)

	plan, err := plans.Create(alice, room.RoomID, CreatePlanInput{PlanName: "hike", PlanDescription: "meet at dawn"})
	require.NoError(t, err)
	_, err = plans.AddWaypoint(alice, plan.PlanID, CreateWaypointInput{WaypointName: "trailhead", Latitude: 1, Longitude: 2})
	require.NoError(t, err)
	job := models.ExportJob{JobID: uuid.NewString(), RoomID: room.RoomID, Format: "csv", Status: "done"}
	require.NoError(t, st.ExportJobs().Create(&job))

	require.NoError(t, rooms.Delete(alice, room.RoomID))

	assert.EqualValues(t, 0, roomCount(t, st))
	members, err := st.Memberships().AllActiveForRoom(room.RoomID)
	require.NoError(t, err)
	assert.Empty(t, members)
	remaining, err := st.Plans().AllForRoom(room.RoomID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
	wps, err := st.Waypoints().AllForPlan(plan.PlanID)
	require.NoError(t, err)
	assert.Empty(t, wps)
	_, err = st.ExportJobs().Find(job.JobID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteRoomForbiddenForNonAdmin(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	alice := seedAccount(t, st, "alice")
	bob := seedAccount(t, st, "bob")

	room, err := rooms.Create(alice, CreateRoomInput{RoomName: "room1"})
	require.NoError(t, err)
	_, err = rooms.Join(bob, room.RoomID, models.AuthorityUser)
	require.NoError(t, err)

	err = rooms.Delete(bob, room.RoomID)
	assert.ErrorIs(t, err, ErrForbidden)

	// no mutation happened
	assert.EqualValues(t, 1, roomCount(t, st))
	_, err = st.Memberships().Find(bob.AccountID, room.RoomID)
	assert.NoError(t, err)
}

func TestDeleteRoomForbiddenForNonMember(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	alice := seedAccount(t, st, "alice")
	mallory := seedAccount(t, st, "mallory")

	room, err := rooms.Create(alice, CreateRoomInput{RoomName: "room1"})
	require.NoError(t, err)

	assert.ErrorIs(t, rooms.Delete(mallory, room.RoomID), ErrForbidden)
	assert.EqualValues(t, 1, roomCount(t, st))
}

func TestDeleteRoomForbiddenForInactiveAdmin(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	alice := seedAccount(t, st, "alice")

	room, err := rooms.Create(alice, CreateRoomInput{RoomName: "room1"})
	require.NoError(t, err)

	ur, err := st.Memberships().Find(alice.AccountID, room.RoomID)
	require.NoError(t, err)
	ur.Active = false
	require.NoError(t, st.Memberships().Update(ur))

	assert.ErrorIs(t, rooms.Delete(alice, room.RoomID), ErrForbidden)
}

func TestDeleteRoomMissing(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	alice := seedAccount(t, st, "alice")

	_, err := rooms.Create(alice, CreateRoomInput{RoomName: "keeper"})
	require.NoError(t, err)

	assert.ErrorIs(t, rooms.Delete(alice, uuid.NewString()), ErrNotFound)
	assert.EqualValues(t, 1, roomCount(t, st))
}

func TestExitRoomIdempotent(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	alice := seedAccount(t, st, "alice")
	bob := seedAccount(t, st, "bob")

	room, err := rooms.Create(alice, CreateRoomInput{RoomName: "room1"})
	require.NoError(t, err)
	_, err = rooms.Join(bob, room.RoomID, models.AuthorityUser)
	require.NoError(t, err)

	require.NoError(t, rooms.Exit(bob, room.RoomID))
	memberships, err := st.Memberships().AllActiveForAccount(bob.AccountID)
	require.NoError(t, err)
	assert.Empty(t, memberships)

	// second exit is still a success
	require.NoError(t, rooms.Exit(bob, room.RoomID))

	// exiting a room you never joined is also fine
	require.NoError(t, rooms.Exit(bob, uuid.NewString()))
}

func TestExitRoomLeavesOthersIntact(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	alice := seedAccount(t, st, "alice")
	bob := seedAccount(t, st, "bob")

	room, err := rooms.Create(alice, CreateRoomInput{RoomName: "room1"})
	require.NoError(t, err)
	_, err = rooms.Join(bob, room.RoomID, models.AuthorityMember)
	require.NoError(t, err)

	// even the admin exiting removes only their own membership
	require.NoError(t, rooms.Exit(alice, room.RoomID))

	_, err = st.Rooms().Find(room.RoomID)
	assert.NoError(t, err)
	_, err = st.Memberships().Find(bob.AccountID, room.RoomID)
	assert.NoError(t, err)
}

func TestJoinRoomDefaultsAndReactivation(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	alice := seedAccount(t, st, "alice")
	bob := seedAccount(t, st, "bob")

	room, err := rooms.Create(alice, CreateRoomInput{RoomName: "room1"})
	require.NoError(t, err)

	ur, err := rooms.Join(bob, room.RoomID, "")
	require.NoError(t, err)
	assert.Equal(t, models.AuthorityUser, ur.Authority)
	assert.True(t, ur.Active)

	require.NoError(t, rooms.Exit(bob, room.RoomID))

	// rejoining must not create a second row
	_, err = rooms.Join(bob, room.RoomID, models.AuthorityUser)
	require.NoError(t, err)
	_, err = rooms.Join(bob, room.RoomID, models.AuthorityUser)
	require.NoError(t, err)

	active, err := st.Memberships().AllActiveForAccount(bob.AccountID)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestJoinRoomUnknownAuthority(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	alice := seedAccount(t, st, "alice")

	room, err := rooms.Create(alice, CreateRoomInput{RoomName: "room1"})
	require.NoError(t, err)

	_, err = rooms.Join(alice, room.RoomID, "owner")
	assert.ErrorIs(t, err, ErrInvalidInput)

	// admin cannot be self-granted through join
	_, err = rooms.Join(alice, room.RoomID, models.AuthorityAdmin)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestJoinRoomMissing(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	alice := seedAccount(t, st, "alice")

	_, err := rooms.Join(alice, uuid.NewString(), models.AuthorityUser)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParticipantsRequireActiveMembership(t *testing.T) {
	st := memstore.New()
	rooms := NewRooms(st)
	alice := seedAccount(t, st, "alice")
	bob := seedAccount(t, st, "bob")
	outsider := seedAccount(t, st, "outsider")

	room, err := rooms.Create(alice, CreateRoomInput{RoomName: "room1"})
	require.NoError(t, err)
	_, err = rooms.Join(bob, room.RoomID, models.AuthorityMember)
	require.NoError(t, err)

	participants, err := rooms.Participants(alice, room.RoomID)
	require.NoError(t, err)
	assert.Len(t, participants, 2)

	_, err = rooms.Participants(outsider, room.RoomID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = rooms.Participants(alice, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthorityOrdering(t *testing.T) {
	assert.True(t, models.AuthorityAdmin.AtLeast(models.AuthorityMember))
	assert.True(t, models.AuthorityMember.AtLeast(models.AuthorityUser))
	assert.False(t, models.AuthorityUser.AtLeast(models.AuthorityAdmin))
	assert.False(t, models.Authority("owner").Valid())
}
