package models

import "time"

// UserSession holds one refresh token. The token value is a UUID issued at
// login and rotated on every refresh.
type UserSession struct {
	SessionID    int        `gorm:"primaryKey;column:session_id" json:"session_id"`
	UserID       int        `gorm:"column:user_id" json:"user_id"`
	RefreshToken string     `gorm:"column:refresh_token;unique" json:"-"`
	UserAgent    *string    `gorm:"column:user_agent" json:"user_agent,omitempty"`
	IPAddress    string     `gorm:"column:ip_address" json:"ip_address"`
	ExpiresAt    time.Time  `gorm:"column:expires_at" json:"expires_at"`
	RevokedAt    *time.Time `gorm:"column:revoked_at" json:"revoked_at,omitempty"`
	CreateAt     time.Time  `gorm:"column:create_at" json:"create_at"`
}

func (UserSession) TableName() string {
	return "user_sessions"
}
