package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/planroomhq/planroom-server/models"
	"github.com/planroomhq/planroom-server/secure"
	"github.com/planroomhq/planroom-server/store"
)

// Plans manages a room's plans and waypoints. Descriptions are encrypted
// before they reach the store and decrypted only when building the view
// returned to handlers.
type Plans struct {
	store store.Store
	rooms *Rooms
	codec *secure.Codec
}

func NewPlans(s store.Store, rooms *Rooms, codec *secure.Codec) *Plans {
	return &Plans{store: s, rooms: rooms, codec: codec}
}

// PlanView is the decrypted representation served over the wire.
type PlanView struct {
	PlanID          string    `json:"plan_id"`
	RoomID          string    `json:"room_id"`
	PlanName        string    `json:"plan_name"`
	PlanDescription string    `json:"plan_description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreatePlanInput struct {
	PlanName        string `json:"plan_name" binding:"required,min=1,max=100"`
	PlanDescription string `json:"plan_description"`
}

type CreateWaypointInput struct {
	WaypointName   string  `json:"waypoint_name" binding:"max=100"`
	WaypointNumber int     `json:"waypoint_number"`
	Latitude       float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude      float64 `json:"longitude" binding:"min=-180,max=180"`
}

func (s *Plans) Create(actor models.Account, roomID string, in CreatePlanInput) (*PlanView, error) {
	if in.PlanName == "" {
		return nil, fmt.Errorf("plan_name is required: %w", ErrInvalidInput)
	}
	if _, err := s.store.Rooms().Find(roomID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("room %s: %w", roomID, ErrNotFound)
		}
		return nil, err
	}
	if err := s.rooms.requireActiveMembership(actor, roomID); err != nil {
		return nil, err
	}

	field, err := s.codec.FromPlaintext(in.PlanDescription)
	if err != nil {
		return nil, err
	}
	plan := &models.Plan{
		PlanID:                uuid.NewString(),
		RoomID:                roomID,
		PlanName:              in.PlanName,
		PlanDescriptionSecure: field.Ciphertext(),
	}
	if err := s.store.Plans().Create(plan); err != nil {
		return nil, err
	}
	return s.view(plan)
}

func (s *Plans) ListForRoom(actor models.Account, roomID string) ([]PlanView, error) {
	if _, err := s.store.Rooms().Find(roomID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("room %s: %w", roomID, ErrNotFound)
		}
		return nil, err
	}
	if err := s.rooms.requireActiveMembership(actor, roomID); err != nil {
		return nil, err
	}

	plans, err := s.store.Plans().AllForRoom(roomID)
	if err != nil {
		return nil, err
	}
	views := make([]PlanView, 0, len(plans))
	for i := range plans {
		v, err := s.view(&plans[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

// AddWaypoint appends a waypoint to a plan in a room the actor belongs to.
// A zero waypoint_number means "next in sequence".
func (s *Plans) AddWaypoint(actor models.Account, planID string, in CreateWaypointInput) (*models.Waypoint, error) {
	plan, err := s.findPlanForMember(actor, planID)
	if err != nil {
		return nil, err
	}

	number := in.WaypointNumber
	if number <= 0 {
		existing, err := s.store.Waypoints().AllForPlan(planID)
		if err != nil {
			return nil, err
		}
		number = len(existing) + 1
	}

	wp := &models.Waypoint{
		WaypointID:     uuid.NewString(),
		PlanID:         plan.PlanID,
		WaypointNumber: number,
		WaypointName:   in.WaypointName,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
	}
	if err := s.store.Waypoints().Create(wp); err != nil {
		return nil, err
	}
	return wp, nil
}

func (s *Plans) Waypoints(actor models.Account, planID string) ([]models.Waypoint, error) {
	if _, err := s.findPlanForMember(actor, planID); err != nil {
		return nil, err
	}
	return s.store.Waypoints().AllForPlan(planID)
}

func (s *Plans) findPlanForMember(actor models.Account, planID string) (*models.Plan, error) {
	plan, err := s.store.Plans().Find(planID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("plan %s: %w", planID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := s.rooms.requireActiveMembership(actor, plan.RoomID); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *Plans) view(plan *models.Plan) (*PlanView, error) {
	description, err := secure.FromCiphertext(plan.PlanDescriptionSecure).Reveal(s.codec)
	if err != nil {
		return nil, err
	}
	return &PlanView{
		PlanID:          plan.PlanID,
		RoomID:          plan.RoomID,
		PlanName:        plan.PlanName,
		PlanDescription: description,
		CreatedAt:       plan.CreatedAt,
		UpdatedAt:       plan.UpdatedAt,
	}, nil
}
