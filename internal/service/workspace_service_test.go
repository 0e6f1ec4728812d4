package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claritybiz/irp-platform/internal/model"
	"github.com/claritybiz/irp-platform/internal/repository"
)

func newWorkspaceFixture(t *testing.T, now time.Time) (*WorkspaceService, *model.WorkspaceEntity, model.Principal) {
	t.Helper()

	owner := model.Principal{UserID: uuid.New(), Role: model.RoleSeeker}
	repo := repository.NewWorkspaceRepository()
	entity, err := repo.CreateEntity(context.Background(), model.WorkspaceEntity{
		Name:    "Sunrise Textiles Ltd",
		OwnerID: owner.UserID,
		Modules: []model.WorkspaceModule{
			{ID: uuid.New(), Code: "claims", Name: "Claims Management", Status: model.ModuleStatusActive,
				StartAt: now.AddDate(0, -1, 0), EndAt: now.AddDate(0, 1, 0)},
			{ID: uuid.New(), Code: "meetings", Name: "Meeting Management", Status: model.ModuleStatusActive,
				StartAt: now.AddDate(0, -13, 0), EndAt: now.AddDate(0, -1, 0)},
		},
	})
	require.NoError(t, err)

	svc := NewWorkspaceService(repo)
	svc.now = func() time.Time { return now }
	return svc, entity, owner
}

func TestExpiredModuleWindowReadsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, entity, _ := newWorkspaceFixture(t, now)

	got, err := svc.GetEntity(context.Background(), entity.ID)
	require.NoError(t, err)
	require.Len(t, got.Modules, 2)
	assert.Equal(t, model.ModuleStatusActive, got.Modules[0].Status)
	assert.Equal(t, model.ModuleStatusExpired, got.Modules[1].Status)
}

func TestRequestSubscriptionRejectsActiveModule(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, entity, owner := newWorkspaceFixture(t, now)

	_, err := svc.RequestSubscription(context.Background(), owner, entity.ID, "claims", "Claims Management")
	assert.ErrorIs(t, err, ErrInvalidInput)

	// The lapsed module can be requested again.
	sub, err := svc.RequestSubscription(context.Background(), owner, entity.ID, "meetings", "Meeting Management")
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionRequested, sub.Status)
}

func TestActivateSubscriptionExtendsWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, entity, owner := newWorkspaceFixture(t, now)
	admin := model.Principal{UserID: uuid.New(), Role: model.RoleSystemAdmin}

	sub, err := svc.RequestSubscription(context.Background(), owner, entity.ID, "meetings", "Meeting Management")
	require.NoError(t, err)

	_, err = svc.ActivateSubscription(context.Background(), owner, sub.ID, 12)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	activated, err := svc.ActivateSubscription(context.Background(), admin, sub.ID, 12)
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionActive, activated.Status)

	got, err := svc.GetEntity(context.Background(), entity.ID)
	require.NoError(t, err)
	for _, module := range got.Modules {
		if module.Code == "meetings" {
			assert.Equal(t, model.ModuleStatusActive, module.Status)
			assert.Equal(t, now.AddDate(0, 12, 0), module.EndAt)
		}
	}
}

func TestActivateSubscriptionCarriesModuleName(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, entity, owner := newWorkspaceFixture(t, now)
	admin := model.Principal{UserID: uuid.New(), Role: model.RoleSystemAdmin}

	sub, err := svc.RequestSubscription(context.Background(), owner, entity.ID, "voting", "E-Voting & Polls")
	require.NoError(t, err)
	assert.Equal(t, "E-Voting & Polls", sub.ModuleName)

	_, err = svc.ActivateSubscription(context.Background(), admin, sub.ID, 6)
	require.NoError(t, err)

	got, err := svc.GetEntity(context.Background(), entity.ID)
	require.NoError(t, err)
	found := false
	for _, module := range got.Modules {
		if module.Code == "voting" {
			found = true
			assert.Equal(t, "E-Voting & Polls", module.Name)
		}
	}
	assert.True(t, found)
}

func TestAddTeamMemberDuplicateRejected(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, entity, owner := newWorkspaceFixture(t, now)

	input := AddTeamMemberInput{
		UserID: uuid.New(),
		Name:   "Case Paralegal",
		Email:  "paralegal@example.in",
		Permissions: map[string][]model.ModulePermission{
			"claims": {model.PermissionView, model.PermissionEdit},
		},
	}
	_, err := svc.AddTeamMember(context.Background(), owner, entity.ID, input)
	require.NoError(t, err)

	_, err = svc.AddTeamMember(context.Background(), owner, entity.ID, input)
	assert.ErrorIs(t, err, ErrInvalidInput)

	stranger := model.Principal{UserID: uuid.New(), Role: model.RoleSeeker}
	_, err = svc.AddTeamMember(context.Background(), stranger, entity.ID, AddTeamMemberInput{
		UserID: uuid.New(), Name: "X", Email: "x@example.in",
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
