package model

import (
	"time"

	"github.com/google/uuid"
)

type ModuleStatus string

const (
	ModuleStatusActive            ModuleStatus = "active"
	ModuleStatusTrial             ModuleStatus = "trial"
	ModuleStatusExpired           ModuleStatus = "expired"
	ModuleStatusPendingActivation ModuleStatus = "pending_activation"
)

// WorkspaceModule is a subscription-style record. The effective status is
// derived from the activation window, not trusted from the stored value
// alone (a module past EndAt reads as expired).
type WorkspaceModule struct {
	ID        uuid.UUID    `json:"id"`
	Code      string       `json:"code"`
	Name      string       `json:"name"`
	Status    ModuleStatus `json:"status"`
	StartAt   time.Time    `json:"start_at"`
	EndAt     time.Time    `json:"end_at"`
	TrialDays int          `json:"trial_days,omitempty"`
}

func (m WorkspaceModule) EffectiveStatus(now time.Time) ModuleStatus {
	if m.Status == ModuleStatusPendingActivation {
		return ModuleStatusPendingActivation
	}
	if !m.EndAt.IsZero() && now.After(m.EndAt) {
		return ModuleStatusExpired
	}
	if !m.StartAt.IsZero() && now.Before(m.StartAt) {
		return ModuleStatusPendingActivation
	}
	return m.Status
}

type ModulePermission string

const (
	PermissionView   ModulePermission = "view"
	PermissionEdit   ModulePermission = "edit"
	PermissionAdmin  ModulePermission = "admin"
	PermissionExport ModulePermission = "export"
)

type EntityTeamMember struct {
	UserID      uuid.UUID                     `json:"user_id"`
	Name        string                        `json:"name"`
	Email       string                        `json:"email"`
	Permissions map[string][]ModulePermission `json:"permissions"` // keyed by module code
}

type WorkspaceEntity struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	CIN         string             `json:"cin,omitempty"`
	OwnerID     uuid.UUID          `json:"owner_id"`
	Modules     []WorkspaceModule  `json:"modules"`
	TeamMembers []EntityTeamMember `json:"team_members"`
	CreatedAt   time.Time          `json:"created_at"`
}

type SubscriptionStatus string

const (
	SubscriptionRequested SubscriptionStatus = "requested"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

type Subscription struct {
	ID          uuid.UUID          `json:"id"`
	EntityID    uuid.UUID          `json:"entity_id"`
	ModuleCode  string             `json:"module_code"`
	ModuleName  string             `json:"module_name,omitempty"`
	Status      SubscriptionStatus `json:"status"`
	RequestedAt time.Time          `json:"requested_at"`
	ActivatedAt *time.Time         `json:"activated_at,omitempty"`
}
