package models

import "time"

// Plan belongs to a room. The description is stored encrypted; the
// ciphertext column never leaves the server and plaintext never reaches
// the store. Handlers render the decrypted view via services.PlanView.
type Plan struct {
	PlanID                string    `gorm:"column:plan_id;primaryKey;size:36" json:"plan_id"`
	RoomID                string    `gorm:"column:room_id;size:36;not null;index" json:"room_id"`
	PlanName              string    `gorm:"column:plan_name;size:100;not null" json:"plan_name"`
	PlanDescriptionSecure string    `gorm:"column:plan_description_secure;type:text" json:"-"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Waypoints []Waypoint `gorm:"foreignKey:PlanID" json:"-"`
}

func (Plan) TableName() string {
	return "plans"
}
