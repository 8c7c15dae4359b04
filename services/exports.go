package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path"
	"strconv"

	"github.com/google/uuid"

	"github.com/planroomhq/planroom-server/models"
	"github.com/planroomhq/planroom-server/secure"
	"github.com/planroomhq/planroom-server/store"
)

// Exports produces CSV dumps of a room's plans and waypoints as background
// jobs, the same queue/process/poll shape used for any long-running export.
type Exports struct {
	store  store.Store
	rooms  *Rooms
	codec  *secure.Codec
	outDir string
}

func NewExports(s store.Store, rooms *Rooms, codec *secure.Codec, outDir string) *Exports {
	return &Exports{store: s, rooms: rooms, codec: codec, outDir: outDir}
}

// Queue validates the request, records a queued job, and kicks off
// processing in the background. Only active members of the room may export.
func (s *Exports) Queue(actor models.Account, roomID, format string) (*models.ExportJob, error) {
	if format == "" {
		format = "csv"
	}
	if format != "csv" {
		return nil, fmt.Errorf("unsupported format %q: %w", format, ErrInvalidInput)
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

	job := &models.ExportJob{
		JobID:  uuid.NewString(),
		RoomID: roomID,
		Format: format,
		Status: "queued",
	}
	if err := s.store.ExportJobs().Create(job); err != nil {
		return nil, err
	}

	go s.process(job.JobID)

	return job, nil
}

// Fetch returns a job the actor is allowed to see.
func (s *Exports) Fetch(actor models.Account, jobID string) (*models.ExportJob, error) {
	job, err := s.store.ExportJobs().Find(jobID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("export job %s: %w", jobID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := s.rooms.requireActiveMembership(actor, job.RoomID); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *Exports) process(jobID string) {
	job, err := s.store.ExportJobs().Find(jobID)
	if err != nil {
		return
	}
	job.Status = "processing"
	if err := s.store.ExportJobs().Update(job); err != nil {
		return
	}

	if err := s.writeCSV(job); err != nil {
		msg := err.Error()
		job.Status = "failed"
		job.ErrorMsg = &msg
		s.store.ExportJobs().Update(job)
		return
	}

	job.Status = "done"
	s.store.ExportJobs().Update(job)
}

func (s *Exports) writeCSV(job *models.ExportJob) error {
	if err := os.MkdirAll(s.outDir, 0o755); err != nil {
		return err
	}
	outPath := path.Join(s.outDir, fmt.Sprintf("export_%s.csv", job.JobID))

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	werr := s.writeRows(w, job)
	w.Flush()
	if werr == nil {
		werr = w.Error()
	}
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return werr
	}

	job.FilePath = &outPath
	return nil
}

func (s *Exports) writeRows(w *csv.Writer, job *models.ExportJob) error {
	header := []string{"plan_id", "plan_name", "plan_description", "waypoint_number", "waypoint_name", "latitude", "longitude"}
	if err := w.Write(header); err != nil {
		return err
	}

	plans, err := s.store.Plans().AllForRoom(job.RoomID)
	if err != nil {
		return err
	}
	for i := range plans {
		plan := &plans[i]
		description, err := secure.FromCiphertext(plan.PlanDescriptionSecure).Reveal(s.codec)
		if err != nil {
			return err
		}

		waypoints, err := s.store.Waypoints().AllForPlan(plan.PlanID)
		if err != nil {
			return err
		}
		if len(waypoints) == 0 {
			if err := w.Write([]string{plan.PlanID, plan.PlanName, description, "", "", "", ""}); err != nil {
				return err
			}
			continue
		}
		for _, wp := range waypoints {
			row := []string{
				plan.PlanID,
				plan.PlanName,
				description,
				strconv.Itoa(wp.WaypointNumber),
				wp.WaypointName,
				strconv.FormatFloat(wp.Latitude, 'f', -1, 64),
				strconv.FormatFloat(wp.Longitude, 'f', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return nil
}
