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

func newChatFixture(t *testing.T) (*ChatService, *model.ChatThread, [3]model.Principal) {
	t.Helper()

	seeker := model.Principal{UserID: uuid.New(), Role: model.RoleSeeker, Name: "Seeker"}
	provider := model.Principal{UserID: uuid.New(), Role: model.RoleProvider, Name: "Provider"}
	member := model.Principal{UserID: uuid.New(), Role: model.RoleTeamMember, Name: "Member"}

	svc := NewChatService(repository.NewChatRepository())
	thread, err := svc.CreateThread(context.Background(), seeker, CreateThreadInput{
		Subject: "Engagement terms",
		Participants: []model.ChatParticipant{
			{UserID: seeker.UserID, Name: seeker.Name, Role: seeker.Role},
			{UserID: provider.UserID, Name: provider.Name, Role: provider.Role},
			{UserID: member.UserID, Name: member.Name, Role: member.Role},
		},
	})
	require.NoError(t, err)
	return svc, thread, [3]model.Principal{seeker, provider, member}
}

func TestSendMessageBumpsOthersUnread(t *testing.T) {
	svc, thread, people := newChatFixture(t)
	seeker, provider, member := people[0], people[1], people[2]

	updated, err := svc.SendMessage(context.Background(), seeker, thread.ID, SendMessageInput{Body: "Please review the draft terms."})
	require.NoError(t, err)

	assert.Equal(t, 0, updated.UnreadCount[seeker.UserID.String()])
	assert.Equal(t, 1, updated.UnreadCount[provider.UserID.String()])
	assert.Equal(t, 1, updated.UnreadCount[member.UserID.String()])
	require.Len(t, updated.Messages, 1)
	assert.Equal(t, model.MessageStatusSent, updated.Messages[0].Status)
}

func TestMarkReadZeroesOnlyOwnCounter(t *testing.T) {
	svc, thread, people := newChatFixture(t)
	seeker, provider, member := people[0], people[1], people[2]

	_, err := svc.SendMessage(context.Background(), seeker, thread.ID, SendMessageInput{Body: "First"})
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), seeker, thread.ID, SendMessageInput{Body: "Second"})
	require.NoError(t, err)

	updated, err := svc.MarkRead(context.Background(), provider, thread.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, updated.UnreadCount[provider.UserID.String()])
	assert.Equal(t, 2, updated.UnreadCount[member.UserID.String()])
	for _, msg := range updated.Messages {
		assert.Equal(t, model.MessageStatusRead, msg.Status)
	}
}

func TestSendMessageRequiresParticipant(t *testing.T) {
	svc, thread, _ := newChatFixture(t)
	outsider := model.Principal{UserID: uuid.New(), Role: model.RoleProvider}

	_, err := svc.SendMessage(context.Background(), outsider, thread.ID, SendMessageInput{Body: "Hello"})
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestGetThreadAdminBypassesMembership(t *testing.T) {
	svc, thread, _ := newChatFixture(t)
	admin := model.Principal{UserID: uuid.New(), Role: model.RoleSystemAdmin}

	got, err := svc.GetThread(context.Background(), admin, thread.ID)
	require.NoError(t, err)
	assert.Equal(t, thread.ID, got.ID)
}

func TestCreateThreadRejectsNonParticipantCreator(t *testing.T) {
	svc := NewChatService(repository.NewChatRepository())
	creator := model.Principal{UserID: uuid.New(), Role: model.RoleSeeker}

	_, err := svc.CreateThread(context.Background(), creator, CreateThreadInput{
		Subject: "Fees",
		Participants: []model.ChatParticipant{
			{UserID: uuid.New(), Role: model.RoleProvider},
			{UserID: uuid.New(), Role: model.RoleTeamMember},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAttachmentForcesAttachmentType(t *testing.T) {
	svc, thread, people := newChatFixture(t)

	updated, err := svc.SendMessage(context.Background(), people[0], thread.ID, SendMessageInput{
		Body: "Signed copy attached",
		Attachments: []model.Attachment{
			{FileName: "work-order.pdf", MimeType: "application/pdf", Size: 48211},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Messages, 1)
	assert.Equal(t, model.MessageTypeAttachment, updated.Messages[0].Type)
}
