package model

import (
	"time"

	"github.com/google/uuid"
)

type ProfileRole string

const (
	RoleSeekerIndividual   ProfileRole = "service_seeker_individual"
	RoleSeekerEntity       ProfileRole = "service_seeker_entity"
	RoleProviderIndividual ProfileRole = "service_provider_individual"
	RoleProviderEntity     ProfileRole = "service_provider_entity"
	RoleTeamMemberProfile  ProfileRole = "team_member"
)

// UserProfile keeps the role-specific fields as a nested document so the
// same dotted-path reader serves every variant. Top-level identity and
// derived completion state live beside it.
type UserProfile struct {
	ID                uuid.UUID      `json:"id"`
	UserID            uuid.UUID      `json:"user_id"`
	Role              ProfileRole    `json:"role"`
	Fields            map[string]any `json:"fields"`
	PermanentRegNo    string         `json:"permanent_registration_number,omitempty"`
	TemporaryRegNo    string         `json:"temporary_registration_number,omitempty"`
	CompletionPercent int            `json:"completion_percent"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// ProfileSection names an ordered list of required field paths. Optional
// sections count toward the overall percentage but never block the
// permanent registration number.
type ProfileSection struct {
	Name          string   `json:"name"`
	Mandatory     bool     `json:"mandatory"`
	RequiredPaths []string `json:"required_paths"`
}

type SectionStatus struct {
	Name          string   `json:"name"`
	Mandatory     bool     `json:"mandatory"`
	Required      int      `json:"required"`
	Completed     int      `json:"completed"`
	Percentage    int      `json:"percentage"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

type CompletionStatus struct {
	OverallPercentage      int             `json:"overall_percentage"`
	CanGetPermanentNumber  bool            `json:"can_get_permanent_number"`
	Sections               []SectionStatus `json:"sections"`
	MissingMandatoryFields []string        `json:"missing_mandatory_fields,omitempty"`
}

var seekerIndividualSections = []ProfileSection{
	{Name: "Personal Details", Mandatory: true, RequiredPaths: []string{
		"name", "email", "contactNumber", "dateOfBirth",
	}},
	{Name: "Identity Documents", Mandatory: true, RequiredPaths: []string{
		"identityDocument.type", "identityDocument.number",
	}},
	{Name: "Address", Mandatory: true, RequiredPaths: []string{
		"address.street", "address.city", "address.state", "address.pinCode",
	}},
	{Name: "Banking Details", Mandatory: false, RequiredPaths: []string{
		"banking.accountNumber", "banking.ifsc",
	}},
}

var seekerEntitySections = []ProfileSection{
	{Name: "Entity Details", Mandatory: true, RequiredPaths: []string{
		"entityName", "entityType", "cin", "dateOfIncorporation",
	}},
	{Name: "Authorized Representative", Mandatory: true, RequiredPaths: []string{
		"authorizedRep.name", "authorizedRep.email", "authorizedRep.contactNumber",
		"authorizedRep.designation",
	}},
	{Name: "Registered Address", Mandatory: true, RequiredPaths: []string{
		"address.street", "address.city", "address.state", "address.pinCode",
	}},
	{Name: "Banking Details", Mandatory: false, RequiredPaths: []string{
		"banking.accountNumber", "banking.ifsc",
	}},
}

var providerIndividualSections = []ProfileSection{
	{Name: "Personal Details", Mandatory: true, RequiredPaths: []string{
		"name", "email", "contactNumber", "dateOfBirth",
	}},
	{Name: "Identity Documents", Mandatory: true, RequiredPaths: []string{
		"identityDocument.type", "identityDocument.number",
	}},
	{Name: "Professional Membership", Mandatory: true, RequiredPaths: []string{
		"membership.body", "membership.number", "specialization",
	}},
	{Name: "Address", Mandatory: true, RequiredPaths: []string{
		"address.street", "address.city", "address.state", "address.pinCode",
	}},
	{Name: "Services Offered", Mandatory: false, RequiredPaths: []string{
		"servicesOffered", "feePreference",
	}},
}

var providerEntitySections = []ProfileSection{
	{Name: "Entity Details", Mandatory: true, RequiredPaths: []string{
		"entityName", "entityType", "cin", "dateOfIncorporation",
	}},
	{Name: "Authorized Representative", Mandatory: true, RequiredPaths: []string{
		"authorizedRep.name", "authorizedRep.email", "authorizedRep.contactNumber",
	}},
	{Name: "Professional Membership", Mandatory: true, RequiredPaths: []string{
		"membership.body", "membership.number",
	}},
	{Name: "Registered Address", Mandatory: true, RequiredPaths: []string{
		"address.street", "address.city", "address.state", "address.pinCode",
	}},
	{Name: "Services Offered", Mandatory: false, RequiredPaths: []string{
		"servicesOffered", "feePreference",
	}},
}

var teamMemberSections = []ProfileSection{
	{Name: "Personal Details", Mandatory: true, RequiredPaths: []string{
		"name", "email", "contactNumber",
	}},
	{Name: "Identity Documents", Mandatory: true, RequiredPaths: []string{
		"identityDocument.type", "identityDocument.number",
	}},
	{Name: "Address", Mandatory: true, RequiredPaths: []string{
		"address.street", "address.city", "address.state", "address.pinCode",
	}},
}

func SectionsForRole(role ProfileRole) []ProfileSection {
	switch role {
	case RoleSeekerIndividual:
		return seekerIndividualSections
	case RoleSeekerEntity:
		return seekerEntitySections
	case RoleProviderIndividual:
		return providerIndividualSections
	case RoleProviderEntity:
		return providerEntitySections
	case RoleTeamMemberProfile:
		return teamMemberSections
	default:
		return nil
	}
}
