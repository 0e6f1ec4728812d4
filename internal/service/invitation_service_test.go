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

func newInvitationFixture(t *testing.T) (*InvitationService, *model.ServiceRequest, *model.Professional, model.Principal) {
	t.Helper()
	ctx := context.Background()

	seq := repository.NewSequence()
	professionals := repository.NewProfessionalRepository()
	requests := repository.NewRequestRepository(seq)

	owner := model.Principal{UserID: uuid.New(), Role: model.RoleSeeker}
	request, err := requests.Create(ctx, model.ServiceRequest{
		Title:     "Claims verification support",
		Status:    model.RequestStatusOpen,
		CreatedBy: owner.UserID,
	})
	require.NoError(t, err)

	professional, err := professionals.Create(ctx, model.Professional{
		Name: "Priya Nair", Email: "priya.nair@example.in", Rating: 4.7,
	})
	require.NoError(t, err)

	return NewInvitationService(professionals, requests), request, professional, owner
}

func TestInviteAndRespond(t *testing.T) {
	svc, request, professional, owner := newInvitationFixture(t)
	ctx := context.Background()

	inv, err := svc.Invite(ctx, owner, request.ID, professional.ID, "Please bid on this engagement.")
	require.NoError(t, err)
	assert.Equal(t, model.InvitationPending, inv.Status)

	responded, err := svc.Respond(ctx, inv.ID, true)
	require.NoError(t, err)
	assert.Equal(t, model.InvitationAccepted, responded.Status)
	require.NotNil(t, responded.RespondedAt)

	_, err = svc.Respond(ctx, inv.ID, false)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestInviteDuplicateRejected(t *testing.T) {
	svc, request, professional, owner := newInvitationFixture(t)
	ctx := context.Background()

	_, err := svc.Invite(ctx, owner, request.ID, professional.ID, "")
	require.NoError(t, err)

	_, err = svc.Invite(ctx, owner, request.ID, professional.ID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestInviteOnlyByRequestOwner(t *testing.T) {
	svc, request, professional, _ := newInvitationFixture(t)

	stranger := model.Principal{UserID: uuid.New(), Role: model.RoleSeeker}
	_, err := svc.Invite(context.Background(), stranger, request.ID, professional.ID, "")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestInviteUnknownProfessional(t *testing.T) {
	svc, request, _, owner := newInvitationFixture(t)

	_, err := svc.Invite(context.Background(), owner, request.ID, uuid.New(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}
