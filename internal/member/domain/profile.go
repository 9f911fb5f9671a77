package domain

import "time"

// Profile the persisted user identity shown on messages, distinct from the
// auth account. Created lazily on the first profile-requiring action.
type Profile struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Username  string    `json:"username"`
	About     *string   `json:"about,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName gorm table override
func (Profile) TableName() string {
	return "user_profiles"
}
