package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Location is stored as a JSONB column; shape mirrors the profile editor's
// map picker output.
type Location struct {
	City        string       `json:"city,omitempty"`
	State       string       `json:"state,omitempty"`
	Country     string       `json:"country,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type User struct {
	gorm.Model
	FullName string `gorm:"column:full_name;not null"`
	Username string `gorm:"column:username;uniqueIndex;not null"`
	Email    string `gorm:"column:email;uniqueIndex;not null"`
	Phone    string `gorm:"column:phone"`
	// Bcrypt hash. Never mapped into a response DTO.
	Password  string                       `gorm:"column:password;not null"`
	Avatar    string                       `gorm:"column:avatar;default:default"`
	Location  datatypes.JSONType[Location] `gorm:"column:location"`
	Sports    datatypes.JSONSlice[string]  `gorm:"column:sports"`
	Bio       string                       `gorm:"column:bio;size:500"`
	IsActive  bool                         `gorm:"column:is_active;default:true;not null"`
	IsAdmin   bool                         `gorm:"column:is_admin;default:false;not null"`
	LastLogin time.Time                    `gorm:"column:last_login"`
}

// IsOnline reports whether the user logged in within the last 15 minutes.
// Computed at read time, never stored.
func (u *User) IsOnline() bool {
	return time.Since(u.LastLogin) <= 15*time.Minute
}
