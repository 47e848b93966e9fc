package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User represents an application user profile.
// Identity itself is issued elsewhere; this row carries the display profile.
type User struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name       string         `gorm:"type:varchar(255);not null" json:"name"`
	Email      string         `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	Avatar     string         `gorm:"type:text" json:"avatar"`
	Role       string         `gorm:"type:varchar(100)" json:"role"`
	Department string         `gorm:"type:varchar(100)" json:"department"`
	Team       string         `gorm:"type:varchar(100)" json:"team"`
	Location   string         `gorm:"type:varchar(255)" json:"location"`
	Phone      string         `gorm:"type:varchar(50)" json:"phone"`
	Bio        string         `gorm:"type:text" json:"bio"`
	Skills     datatypes.JSON `gorm:"type:jsonb" json:"skills"`
	JoinedDate time.Time      `gorm:"type:timestamp;not null" json:"joined_date"`
	LastActive time.Time      `gorm:"type:timestamp;not null" json:"last_active"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
