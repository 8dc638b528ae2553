package domain

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AvatarURL    *string   `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserUpdate carries the subset of profile fields to change. Nil fields are left untouched.
type UserUpdate struct {
	Username     *string
	Email        *string
	PasswordHash *string
	AvatarURL    *string
}

func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.Email == nil && u.PasswordHash == nil && u.AvatarURL == nil
}

// Session is the identity carried by a verified token. Username and avatar are
// as of token issuance and may be stale.
type Session struct {
	UserID    int64
	Username  string
	AvatarURL string
}
