package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/planroomhq/planroom-server/models"
	"github.com/planroomhq/planroom-server/store"
)

// Rooms decides who may list, create, delete, join, and exit rooms, and
// performs the corresponding state transitions. The actor is always the
// already-authenticated account, passed explicitly; there is no ambient
// current-account state. All checks happen before any write.
type Rooms struct {
	store store.Store
}

func NewRooms(s store.Store) *Rooms {
	return &Rooms{store: s}
}

// CreateRoomInput is the full set of caller-writable room fields. Anything
// outside it (ids, timestamps, owner) cannot be set through this path.
type CreateRoomInput struct {
	RoomName    string  `json:"room_name" binding:"required,min=1,max=100"`
	Description *string `json:"description"`
}

// List returns the rooms the actor holds an active membership in, at any
// authority level. No membership means an empty list, not an error.
func (s *Rooms) List(actor models.Account) ([]models.Room, error) {
	memberships, err := s.store.Memberships().AllActiveForAccount(actor.AccountID)
	if err != nil {
		return nil, err
	}
	rooms := make([]models.Room, 0, len(memberships))
	for _, ur := range memberships {
		room, err := s.store.Rooms().Find(ur.RoomID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}
	return rooms, nil
}

// Fetch returns a room by id. Membership is not required to fetch; only
// existence is checked.
func (s *Rooms) Fetch(_ models.Account, roomID string) (*models.Room, error) {
	room, err := s.store.Rooms().Find(roomID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("room %s: %w", roomID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return room, nil
}

// Create persists a room owned by the actor and makes the actor its admin.
func (s *Rooms) Create(actor models.Account, in CreateRoomInput) (*models.Room, error) {
	if in.RoomName == "" {
		return nil, fmt.Errorf("room_name is required: %w", ErrInvalidInput)
	}

	room := &models.Room{
		RoomID:      uuid.NewString(),
		RoomName:    in.RoomName,
		Description: in.Description,
		AccountID:   actor.AccountID,
	}
	err := s.store.Transact(func(tx store.Store) error {
		if err := tx.Rooms().Create(room); err != nil {
			return err
		}
		return tx.Memberships().Create(&models.UserRoom{
			AccountID: actor.AccountID,
			RoomID:    room.RoomID,
			Authority: models.AuthorityAdmin,
			Active:    true,
		})
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// Delete removes a room and every membership, plan, and waypoint attached
// to it in one transaction. Only an active admin of the room may delete it.
func (s *Rooms) Delete(actor models.Account, roomID string) error {
	if _, err := s.store.Rooms().Find(roomID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("room %s: %w", roomID, ErrNotFound)
		}
		return err
	}

	ur, err := s.store.Memberships().Find(actor.AccountID, roomID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("not a member of room %s: %w", roomID, ErrForbidden)
	}
	if err != nil {
		return err
	}
	if !ur.Active || ur.Authority != models.AuthorityAdmin {
		return fmt.Errorf("admin authority required: %w", ErrForbidden)
	}

	return s.store.Transact(func(tx store.Store) error {
		plans, err := tx.Plans().AllForRoom(roomID)
		if err != nil {
			return err
		}
		planIDs := make([]string, 0, len(plans))
		for _, p := range plans {
			planIDs = append(planIDs, p.PlanID)
		}
		if err := tx.Waypoints().DeleteAllForPlans(planIDs); err != nil {
			return err
		}
		if err := tx.Plans().DeleteAllForRoom(roomID); err != nil {
			return err
		}
		if err := tx.Memberships().DeleteAllForRoom(roomID); err != nil {
			return err
		}
		if err := tx.ExportJobs().DeleteAllForRoom(roomID); err != nil {
			return err
		}
		return tx.Rooms().Delete(roomID)
	})
}

// Exit removes the actor's own membership. Exiting a room the actor is not
// in succeeds without touching anything; other members and the room itself
// are never affected.
func (s *Rooms) Exit(actor models.Account, roomID string) error {
	_, err := s.store.Memberships().Find(actor.AccountID, roomID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.store.Memberships().Delete(actor.AccountID, roomID)
}

// Join adds the actor to an existing room. Rejoining reactivates the old
// membership instead of creating a second row.
func (s *Rooms) Join(actor models.Account, roomID string, authority models.Authority) (*models.UserRoom, error) {
	if authority == "" {
		authority = models.AuthorityUser
	}
	if !authority.Valid() {
		return nil, fmt.Errorf("unknown authority %q: %w", authority, ErrInvalidInput)
	}
	if authority == models.AuthorityAdmin {
		return nil, fmt.Errorf("admin is granted on creation only: %w", ErrInvalidInput)
	}

	if _, err := s.store.Rooms().Find(roomID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("room %s: %w", roomID, ErrNotFound)
		}
		return nil, err
	}

	existing, err := s.store.Memberships().Find(actor.AccountID, roomID)
	if err == nil {
		existing.Active = true
		if err := s.store.Memberships().Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	ur := &models.UserRoom{
		AccountID: actor.AccountID,
		RoomID:    roomID,
		Authority: authority,
		Active:    true,
	}
	if err := s.store.Memberships().Create(ur); err != nil {
		return nil, err
	}
	return ur, nil
}

// Participants lists the active members of a room the actor belongs to.
func (s *Rooms) Participants(actor models.Account, roomID string) ([]models.UserRoom, error) {
	if _, err := s.store.Rooms().Find(roomID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("room %s: %w", roomID, ErrNotFound)
		}
		return nil, err
	}
	if err := s.requireActiveMembership(actor, roomID); err != nil {
		return nil, err
	}
	return s.store.Memberships().AllActiveForRoom(roomID)
}

func (s *Rooms) requireActiveMembership(actor models.Account, roomID string) error {
	ur, err := s.store.Memberships().Find(actor.AccountID, roomID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("not a member of room %s: %w", roomID, ErrForbidden)
	}
	if err != nil {
		return err
	}
	if !ur.Active {
		return fmt.Errorf("membership inactive for room %s: %w", roomID, ErrForbidden)
	}
	return nil
}
