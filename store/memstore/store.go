// Package memstore is an in-memory implementation of the store contracts,
// used by unit tests. A single mutex serializes access; Transact snapshots
// the maps and restores them when fn fails, so the rollback semantics the
// service layer relies on hold here too.
package memstore

import (
	"fmt"
	"sort"
	"sync"

	"github.com/planroomhq/planroom-server/models"
	"github.com/planroomhq/planroom-server/store"
)

type Store struct {
	mu sync.Mutex

	accounts    map[string]models.Account
	rooms       map[string]models.Room
	memberships map[string]models.UserRoom // keyed accountID + "|" + roomID
	plans       map[string]models.Plan
	waypoints   map[string]models.Waypoint
	jobs        map[string]models.ExportJob
}

func New() *Store {
	return &Store{
		accounts:    make(map[string]models.Account),
		rooms:       make(map[string]models.Room),
		memberships: make(map[string]models.UserRoom),
		plans:       make(map[string]models.Plan),
		waypoints:   make(map[string]models.Waypoint),
		jobs:        make(map[string]models.ExportJob),
	}
}

func membershipKey(accountID, roomID string) string {
	return accountID + "|" + roomID
}

func (s *Store) Accounts() store.AccountStore       { return accounts{s} }
func (s *Store) Rooms() store.RoomStore             { return rooms{s} }
func (s *Store) Memberships() store.MembershipStore { return memberships{s} }
func (s *Store) Plans() store.PlanStore             { return plans{s} }
func (s *Store) Waypoints() store.WaypointStore     { return waypoints{s} }
func (s *Store) ExportJobs() store.ExportJobStore   { return exportJobs{s} }

func (s *Store) Transact(fn func(store.Store) error) error {
	s.mu.Lock()
	snapAccounts := copyMap(s.accounts)
	snapRooms := copyMap(s.rooms)
	snapMemberships := copyMap(s.memberships)
	snapPlans := copyMap(s.plans)
	snapWaypoints := copyMap(s.waypoints)
	snapJobs := copyMap(s.jobs)
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.accounts = snapAccounts
		s.rooms = snapRooms
		s.memberships = snapMemberships
		s.plans = snapPlans
		s.waypoints = snapWaypoints
		s.jobs = snapJobs
		s.mu.Unlock()
		return err
	}
	return nil
}

func copyMap[V any](in map[string]V) map[string]V {
	out := make(map[string]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

type accounts struct{ s *Store }

func (a accounts) Find(accountID string) (*models.Account, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	acc, ok := a.s.accounts[accountID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &acc, nil
}

func (a accounts) FindByUsername(username string) (*models.Account, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	for _, acc := range a.s.accounts {
		if acc.Username == username {
			out := acc
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (a accounts) FindByEmail(email string) (*models.Account, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	for _, acc := range a.s.accounts {
		if acc.Email == email {
			out := acc
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (a accounts) Create(account *models.Account) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	for _, acc := range a.s.accounts {
		if acc.Username == account.Username || acc.Email == account.Email {
			return fmt.Errorf("memstore: duplicate account %q", account.Username)
		}
	}
	a.s.accounts[account.AccountID] = *account
	return nil
}

type rooms struct{ s *Store }

func (r rooms) Find(roomID string) (*models.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	room, ok := r.s.rooms[roomID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &room, nil
}

func (r rooms) Create(room *models.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.rooms[room.RoomID] = *room
	return nil
}

func (r rooms) Delete(roomID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.rooms, roomID)
	return nil
}

func (r rooms) Count() (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.rooms)), nil
}

type memberships struct{ s *Store }

func (m memberships) Find(accountID, roomID string) (*models.UserRoom, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	ur, ok := m.s.memberships[membershipKey(accountID, roomID)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &ur, nil
}

func (m memberships) Create(ur *models.UserRoom) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	key := membershipKey(ur.AccountID, ur.RoomID)
	if _, exists := m.s.memberships[key]; exists {
		return fmt.Errorf("memstore: duplicate membership %s", key)
	}
	m.s.memberships[key] = *ur
	return nil
}

func (m memberships) Update(ur *models.UserRoom) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.memberships[membershipKey(ur.AccountID, ur.RoomID)] = *ur
	return nil
}

func (m memberships) Delete(accountID, roomID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.memberships, membershipKey(accountID, roomID))
	return nil
}

func (m memberships) DeleteAllForRoom(roomID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for key, ur := range m.s.memberships {
		if ur.RoomID == roomID {
			delete(m.s.memberships, key)
		}
	}
	return nil
}

func (m memberships) AllActiveForAccount(accountID string) ([]models.UserRoom, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []models.UserRoom
	for _, ur := range m.s.memberships {
		if ur.AccountID == accountID && ur.Active {
			out = append(out, ur)
		}
	}
	return out, nil
}

func (m memberships) AllActiveForRoom(roomID string) ([]models.UserRoom, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []models.UserRoom
	for _, ur := range m.s.memberships {
		if ur.RoomID == roomID && ur.Active {
			out = append(out, ur)
		}
	}
	return out, nil
}

type plans struct{ s *Store }

func (p plans) Find(planID string) (*models.Plan, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	plan, ok := p.s.plans[planID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &plan, nil
}

func (p plans) Create(plan *models.Plan) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	p.s.plans[plan.PlanID] = *plan
	return nil
}

func (p plans) AllForRoom(roomID string) ([]models.Plan, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	var out []models.Plan
	for _, plan := range p.s.plans {
		if plan.RoomID == roomID {
			out = append(out, plan)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].PlanID < out[j].PlanID
	})
	return out, nil
}

func (p plans) DeleteAllForRoom(roomID string) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	for id, plan := range p.s.plans {
		if plan.RoomID == roomID {
			delete(p.s.plans, id)
		}
	}
	return nil
}

type waypoints struct{ s *Store }

func (w waypoints) Create(wp *models.Waypoint) error {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()
	w.s.waypoints[wp.WaypointID] = *wp
	return nil
}

func (w waypoints) AllForPlan(planID string) ([]models.Waypoint, error) {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()
	var out []models.Waypoint
	for _, wp := range w.s.waypoints {
		if wp.PlanID == planID {
			out = append(out, wp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WaypointNumber < out[j].WaypointNumber })
	return out, nil
}

func (w waypoints) DeleteAllForPlans(planIDs []string) error {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()
	ids := make(map[string]struct{}, len(planIDs))
	for _, id := range planIDs {
		ids[id] = struct{}{}
	}
	for id, wp := range w.s.waypoints {
		if _, ok := ids[wp.PlanID]; ok {
			delete(w.s.waypoints, id)
		}
	}
	return nil
}

type exportJobs struct{ s *Store }

func (e exportJobs) Find(jobID string) (*models.ExportJob, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	job, ok := e.s.jobs[jobID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &job, nil
}

func (e exportJobs) Create(job *models.ExportJob) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	e.s.jobs[job.JobID] = *job
	return nil
}

func (e exportJobs) Update(job *models.ExportJob) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	e.s.jobs[job.JobID] = *job
	return nil
}

func (e exportJobs) DeleteAllForRoom(roomID string) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	for id, job := range e.s.jobs {
		if job.RoomID == roomID {
			delete(e.s.jobs, id)
		}
	}
	return nil
}
