// Package store declares the persistence contracts the service layer
// depends on. The gormstore package implements them against PostgreSQL;
// memstore implements them in memory for tests.
package store

import (
	"errors"

	"github.com/planroomhq/planroom-server/models"
)

// ErrNotFound is returned by every Find on a missing record.
// Implementations translate their driver's sentinel to this one.
var ErrNotFound = errors.New("record not found")

type AccountStore interface {
	Find(accountID string) (*models.Account, error)
	FindByUsername(username string) (*models.Account, error)
	FindByEmail(email string) (*models.Account, error)
	Create(account *models.Account) error
}

type RoomStore interface {
	Find(roomID string) (*models.Room, error)
	Create(room *models.Room) error
	Delete(roomID string) error
	Count() (int64, error)
}

// MembershipStore must never hold two rows for the same
// (account, room) pair.
type MembershipStore interface {
	Find(accountID, roomID string) (*models.UserRoom, error)
	Create(ur *models.UserRoom) error
	Update(ur *models.UserRoom) error
	Delete(accountID, roomID string) error
	DeleteAllForRoom(roomID string) error
	AllActiveForAccount(accountID string) ([]models.UserRoom, error)
	AllActiveForRoom(roomID string) ([]models.UserRoom, error)
}

type PlanStore interface {
	Find(planID string) (*models.Plan, error)
	Create(plan *models.Plan) error
	AllForRoom(roomID string) ([]models.Plan, error)
	DeleteAllForRoom(roomID string) error
}

type WaypointStore interface {
	Create(wp *models.Waypoint) error
	AllForPlan(planID string) ([]models.Waypoint, error)
	DeleteAllForPlans(planIDs []string) error
}

type ExportJobStore interface {
	Find(jobID string) (*models.ExportJob, error)
	Create(job *models.ExportJob) error
	Update(job *models.ExportJob) error
	DeleteAllForRoom(roomID string) error
}

// Store bundles the per-model stores and the transactional scope used by
// the cascading room delete.
type Store interface {
	Accounts() AccountStore
	Rooms() RoomStore
	Memberships() MembershipStore
	Plans() PlanStore
	Waypoints() WaypointStore
	ExportJobs() ExportJobStore

	// Transact runs fn against a store whose writes commit or roll back
	// as one unit.
	Transact(fn func(Store) error) error
}
