package models

import "time"

type Account struct {
	AccountID    string    `gorm:"column:account_id;primaryKey;size:36" json:"account_id"`
	Username     string    `gorm:"column:username;size:100;unique;not null" json:"username"`
	Email        string    `gorm:"column:email;size:100;unique;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"` // hash only, never serialized
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Rooms     []Room     `gorm:"foreignKey:AccountID" json:"-"`
	UserRooms []UserRoom `gorm:"foreignKey:AccountID" json:"-"`
}

func (Account) TableName() string {
	return "accounts"
}
