package model

import "github.com/google/uuid"

// Principal is the authenticated caller as carried in the access token.
type Principal struct {
	UserID   uuid.UUID
	EntityID uuid.UUID
	Role     ParticipantRole
	Name     string
}

func (p Principal) IsSeeker() bool      { return p.Role == RoleSeeker }
func (p Principal) IsProvider() bool    { return p.Role == RoleProvider }
func (p Principal) IsTeamMember() bool  { return p.Role == RoleTeamMember }
func (p Principal) IsSystemAdmin() bool { return p.Role == RoleSystemAdmin }
