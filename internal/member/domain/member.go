package domain

import (
	"time"

	"noteshub/pkg/encrypt"
)

// MemberStatus member account state
type MemberStatus int

// states: 0=offline, 1=online, 2=ban, 3=delete
const (
	// MemberStatusOffLine signed out
	MemberStatusOffLine MemberStatus = iota
	// MemberStatusOnLine signed in
	MemberStatusOnLine
	// MemberStatusBan blocked
	MemberStatusBan
	// MemberStatusDelete removed
	MemberStatusDelete
)

// Member an email+password account
type Member struct {
	ID       int64
	MemberID string
	Email    string
	Password string
	Status   MemberStatus
}

// MemberSession the session stored against a signed-in member
type MemberSession struct {
	Token        string    `json:"Token"`
	MemberID     string    `json:"MemberID"`
	CreatedAt    time.Time `json:"CreatedAt"`
	LastActivity time.Time `json:"LastActivity"`
	ExpiredAt    time.Time `json:"ExpiredAt"`
}

// IsPasswordMatch verify a login attempt
func (m *Member) IsPasswordMatch(inputPwd string) error {
	return encrypt.CheckPassword(m.Password, inputPwd)
}

// IsExpired check the session is past its deadline
func (s *MemberSession) IsExpired() bool {
	return time.Now().After(s.ExpiredAt)
}

// MemberQuery join conditions are used to query members
type MemberQuery struct {
	ID       *int64  `db:"id"`
	MemberID *string `db:"member_id"`
	Email    *string `db:"email"`
}
