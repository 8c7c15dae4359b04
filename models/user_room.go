package models

import "time"

// Authority is the privilege tier an account holds inside one room.
// Ordering: admin > member > user.
type Authority string

const (
	AuthorityAdmin  Authority = "admin"
	AuthorityMember Authority = "member"
	AuthorityUser   Authority = "user"
)

var authorityRank = map[Authority]int{
	AuthorityAdmin:  3,
	AuthorityMember: 2,
	AuthorityUser:   1,
}

func (a Authority) Valid() bool {
	_, ok := authorityRank[a]
	return ok
}

// AtLeast reports whether a grants the privileges of b.
func (a Authority) AtLeast(b Authority) bool {
	return authorityRank[a] >= authorityRank[b]
}

// UserRoom is the membership join record. The composite primary key keeps
// at most one row per (account, room) pair.
type UserRoom struct {
	AccountID string    `gorm:"column:account_id;primaryKey;size:36" json:"account_id"`
	RoomID    string    `gorm:"column:room_id;primaryKey;size:36" json:"room_id"`
	Authority Authority `gorm:"column:authority;size:20;not null" json:"authority"`
	Active    bool      `gorm:"column:active;default:true" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserRoom) TableName() string {
	return "user_rooms"
}
