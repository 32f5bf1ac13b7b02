package models

import "time"

type User struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	Name          string             `gorm:"type:varchar(255);not null" json:"name"`
	Email         string             `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password      string             `gorm:"type:varchar(255);not null" json:"-"`
	Role          string             `gorm:"type:varchar(50);not null" json:"role"` // admin, manager, contributor
	BusinessAreas []UserBusinessArea `gorm:"foreignKey:UserID" json:"business_areas"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// UserBusinessArea grants a user access to one business area. The first
// grant (lowest id) is the user's primary area; new records are always
// created into it.
type UserBusinessArea struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	BusinessArea string `gorm:"type:varchar(100);not null" json:"business_area"`
}

// AreaNames flattens the grants, preserving grant order.
func (u *User) AreaNames() []string {
	areas := make([]string, 0, len(u.BusinessAreas))
	for _, ba := range u.BusinessAreas {
		areas = append(areas, ba.BusinessArea)
	}
	return areas
}
