package models

import "time"

type Waypoint struct {
	WaypointID     string    `gorm:"column:waypoint_id;primaryKey;size:36" json:"waypoint_id"`
	PlanID         string    `gorm:"column:plan_id;size:36;not null;index" json:"plan_id"`
	WaypointNumber int       `gorm:"column:waypoint_number;not null" json:"waypoint_number"`
	WaypointName   string    `gorm:"column:waypoint_name;size:100" json:"waypoint_name"`
	Latitude       float64   `gorm:"column:latitude" json:"latitude"`
	Longitude      float64   `gorm:"column:longitude" json:"longitude"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Waypoint) TableName() string {
	return "waypoints"
}
