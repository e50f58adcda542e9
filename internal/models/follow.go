package models

import "time"

// Follow is a directed edge: follower receives updates about following.
// The composite primary key makes duplicate edges impossible at the
// database level; services still check first to return a clean conflict.
type Follow struct {
	FollowerID  uint      `gorm:"primaryKey;autoIncrement:false" json:"follower_id"`
	FollowingID uint      `gorm:"primaryKey;autoIncrement:false" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName keeps the historical table name.
func (Follow) TableName() string {
	return "followers"
}
