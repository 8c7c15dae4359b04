package models

import "time"

type Room struct {
	RoomID      string    `gorm:"column:room_id;primaryKey;size:36" json:"room_id"`
	RoomName    string    `gorm:"column:room_name;size:100;not null" json:"room_name"`
	Description *string   `gorm:"column:description;type:text" json:"description"`
	AccountID   string    `gorm:"column:account_id;size:36;not null" json:"account_id"` // creator
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	UserRooms []UserRoom `gorm:"foreignKey:RoomID" json:"-"`
	Plans     []Plan     `gorm:"foreignKey:RoomID" json:"-"`
}

func (Room) TableName() string {
	return "rooms"
}
