// Package gormstore implements the store contracts on top of GORM and
// PostgreSQL.
package gormstore

import (
	"errors"

	"gorm.io/gorm"

	"github.com/planroomhq/planroom-server/models"
	"github.com/planroomhq/planroom-server/store"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Accounts() store.AccountStore       { return accounts{s.db} }
func (s *Store) Rooms() store.RoomStore             { return rooms{s.db} }
func (s *Store) Memberships() store.MembershipStore { return memberships{s.db} }
func (s *Store) Plans() store.PlanStore             { return plans{s.db} }
func (s *Store) Waypoints() store.WaypointStore     { return waypoints{s.db} }
func (s *Store) ExportJobs() store.ExportJobStore   { return exportJobs{s.db} }

func (s *Store) Transact(fn func(store.Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}

type accounts struct{ db *gorm.DB }

func (a accounts) Find(accountID string) (*models.Account, error) {
	var acc models.Account
	if err := a.db.First(&acc, "account_id = ?", accountID).Error; err != nil {
		return nil, translate(err)
	}
	return &acc, nil
}

func (a accounts) FindByUsername(username string) (*models.Account, error) {
	var acc models.Account
	if err := a.db.First(&acc, "username = ?", username).Error; err != nil {
		return nil, translate(err)
	}
	return &acc, nil
}

func (a accounts) FindByEmail(email string) (*models.Account, error) {
	var acc models.Account
	if err := a.db.First(&acc, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &acc, nil
}

func (a accounts) Create(account *models.Account) error {
	return a.db.Create(account).Error
}

type rooms struct{ db *gorm.DB }

func (r rooms) Find(roomID string) (*models.Room, error) {
	var room models.Room
	if err := r.db.First(&room, "room_id = ?", roomID).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (r rooms) Create(room *models.Room) error {
	return r.db.Create(room).Error
}

func (r rooms) Delete(roomID string) error {
	return r.db.Delete(&models.Room{}, "room_id = ?", roomID).Error
}

func (r rooms) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Room{}).Count(&n).Error
	return n, err
}

type memberships struct{ db *gorm.DB }

func (m memberships) Find(accountID, roomID string) (*models.UserRoom, error) {
	var ur models.UserRoom
	err := m.db.First(&ur, "account_id = ? AND room_id = ?", accountID, roomID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &ur, nil
}

func (m memberships) Create(ur *models.UserRoom) error {
	return m.db.Create(ur).Error
}

func (m memberships) Update(ur *models.UserRoom) error {
	return m.db.Save(ur).Error
}

func (m memberships) Delete(accountID, roomID string) error {
	return m.db.Delete(&models.UserRoom{}, "account_id = ? AND room_id = ?", accountID, roomID).Error
}

func (m memberships) DeleteAllForRoom(roomID string) error {
	return m.db.Delete(&models.UserRoom{}, "room_id = ?", roomID).Error
}

func (m memberships) AllActiveForAccount(accountID string) ([]models.UserRoom, error) {
	var urs []models.UserRoom
	err := m.db.Where("account_id = ? AND active = ?", accountID, true).Find(&urs).Error
	return urs, err
}

func (m memberships) AllActiveForRoom(roomID string) ([]models.UserRoom, error) {
	var urs []models.UserRoom
	err := m.db.Where("room_id = ? AND active = ?", roomID, true).Find(&urs).Error
	return urs, err
}

type plans struct{ db *gorm.DB }

func (p plans) Find(planID string) (*models.Plan, error) {
	var plan models.Plan
	if err := p.db.First(&plan, "plan_id = ?", planID).Error; err != nil {
		return nil, translate(err)
	}
	return &plan, nil
}

func (p plans) Create(plan *models.Plan) error {
	return p.db.Create(plan).Error
}

func (p plans) AllForRoom(roomID string) ([]models.Plan, error) {
	var out []models.Plan
	err := p.db.Where("room_id = ?", roomID).Order("created_at asc").Find(&out).Error
	return out, err
}

func (p plans) DeleteAllForRoom(roomID string) error {
	return p.db.Delete(&models.Plan{}, "room_id = ?", roomID).Error
}

type waypoints struct{ db *gorm.DB }

func (w waypoints) Create(wp *models.Waypoint) error {
	return w.db.Create(wp).Error
}

func (w waypoints) AllForPlan(planID string) ([]models.Waypoint, error) {
	var out []models.Waypoint
	err := w.db.Where("plan_id = ?", planID).Order("waypoint_number asc").Find(&out).Error
	return out, err
}

func (w waypoints) DeleteAllForPlans(planIDs []string) error {
	if len(planIDs) == 0 {
		return nil
	}
	return w.db.Delete(&models.Waypoint{}, "plan_id IN ?", planIDs).Error
}

type exportJobs struct{ db *gorm.DB }

func (e exportJobs) Find(jobID string) (*models.ExportJob, error) {
	var job models.ExportJob
	if err := e.db.First(&job, "job_id = ?", jobID).Error; err != nil {
		return nil, translate(err)
	}
	return &job, nil
}

func (e exportJobs) Create(job *models.ExportJob) error {
	return e.db.Create(job).Error
}

func (e exportJobs) Update(job *models.ExportJob) error {
	return e.db.Save(job).Error
}

func (e exportJobs) DeleteAllForRoom(roomID string) error {
	return e.db.Delete(&models.ExportJob{}, "room_id = ?", roomID).Error
}
