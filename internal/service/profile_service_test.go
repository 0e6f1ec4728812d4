package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claritybiz/irp-platform/internal/model"
	"github.com/claritybiz/irp-platform/internal/repository"
)

func teamMemberFields() map[string]any {
	return map[string]any{
		"name":          "Asha Verma",
		"email":         "asha@example.com",
		"contactNumber": "+91-9800000001",
		"identityDocument": map[string]any{
			"type":   "passport",
			"number": "P1234567",
		},
		"address": map[string]any{
			"street":  "12 Residency Road",
			"city":    "Bengaluru",
			"state":   "Karnataka",
			"pinCode": "560025",
		},
	}
}

func TestCalculateCompletionEmptyProfile(t *testing.T) {
	status := CalculateCompletion(map[string]any{}, model.RoleTeamMemberProfile)

	assert.Equal(t, 0, status.OverallPercentage)
	assert.False(t, status.CanGetPermanentNumber)
	assert.Len(t, status.Sections, 3)
	assert.Contains(t, status.MissingMandatoryFields, "identityDocument.number")
}

func TestCalculateCompletionFullProfile(t *testing.T) {
	status := CalculateCompletion(teamMemberFields(), model.RoleTeamMemberProfile)

	assert.Equal(t, 100, status.OverallPercentage)
	assert.True(t, status.CanGetPermanentNumber)
	assert.Empty(t, status.MissingMandatoryFields)
	for _, section := range status.Sections {
		assert.Equal(t, 100, section.Percentage)
	}
}

func TestCalculateCompletionPartialSection(t *testing.T) {
	fields := map[string]any{
		"name":          "Asha Verma",
		"email":         "asha@example.com",
		"contactNumber": "+91-9800000001",
	}
	status := CalculateCompletion(fields, model.RoleTeamMemberProfile)

	// 3 of 9 mandatory paths filled.
	assert.Equal(t, 33, status.OverallPercentage)
	assert.False(t, status.CanGetPermanentNumber)
	assert.Equal(t, 100, status.Sections[0].Percentage)
	assert.Equal(t, 0, status.Sections[1].Percentage)
}

func TestCalculateCompletionIdempotent(t *testing.T) {
	fields := teamMemberFields()
	first := CalculateCompletion(fields, model.RoleTeamMemberProfile)
	second := CalculateCompletion(fields, model.RoleTeamMemberProfile)
	assert.Equal(t, first, second)
}

func TestCalculateCompletionMonotone(t *testing.T) {
	fields := map[string]any{}
	paths := []struct {
		path  string
		value any
	}{
		{"name", "Asha Verma"},
		{"email", "asha@example.com"},
		{"contactNumber", "+91-9800000001"},
		{"identityDocument.type", "passport"},
		{"identityDocument.number", "P1234567"},
		{"address.street", "12 Residency Road"},
		{"address.city", "Bengaluru"},
		{"address.state", "Karnataka"},
		{"address.pinCode", "560025"},
	}

	svc := NewProfileService(repository.NewProfileRepository(repository.NewSequence()))
	userID := uuid.New()
	_, err := svc.Create(context.Background(), userID, model.RoleTeamMemberProfile, fields)
	require.NoError(t, err)

	previous := 0
	for _, p := range paths {
		_, status, err := svc.ApplyUpdates(context.Background(), userID, []FieldUpdate{{Path: p.path, Value: p.value}})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, status.OverallPercentage, previous)
		previous = status.OverallPercentage
	}
	assert.Equal(t, 100, previous)
}

func TestPermanentNumberAssignedOnce(t *testing.T) {
	svc := NewProfileService(repository.NewProfileRepository(repository.NewSequence()))
	userID := uuid.New()

	_, err := svc.Create(context.Background(), userID, model.RoleTeamMemberProfile, teamMemberFields())
	require.NoError(t, err)

	profile, status, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, status.CanGetPermanentNumber)
	require.NotEmpty(t, profile.PermanentRegNo)
	assigned := profile.PermanentRegNo

	// Clearing an optional-looking field must not revoke the number, and
	// further edits must not reissue it.
	profile, _, err = svc.ApplyUpdates(context.Background(), userID, []FieldUpdate{
		{Path: "address.street", Value: "14 Residency Road"},
	})
	require.NoError(t, err)
	assert.Equal(t, assigned, profile.PermanentRegNo)
}

func TestCreateProfileRejectsUnknownRole(t *testing.T) {
	svc := NewProfileService(repository.NewProfileRepository(repository.NewSequence()))
	_, err := svc.Create(context.Background(), uuid.New(), model.ProfileRole("auditor"), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestApplyUpdatesScalarTraversal(t *testing.T) {
	svc := NewProfileService(repository.NewProfileRepository(repository.NewSequence()))
	userID := uuid.New()
	_, err := svc.Create(context.Background(), userID, model.RoleTeamMemberProfile, map[string]any{"name": "Asha"})
	require.NoError(t, err)

	_, _, err = svc.ApplyUpdates(context.Background(), userID, []FieldUpdate{
		{Path: "name.first", Value: "Asha"},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
