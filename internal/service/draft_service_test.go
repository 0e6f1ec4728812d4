package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftSaveLoadDiscard(t *testing.T) {
	ctx := context.Background()
	svc := NewDraftService()
	planID, authorID := uuid.New(), uuid.New()

	body := json.RawMessage(`{"summary":"revised repayment schedule"}`)
	saved, err := svc.Save(ctx, planID, authorID, body)
	require.NoError(t, err)
	assert.False(t, saved.SavedAt.IsZero())

	loaded, err := svc.Load(ctx, planID, authorID)
	require.NoError(t, err)
	assert.JSONEq(t, string(body), string(loaded.Body))

	require.NoError(t, svc.Discard(ctx, planID, authorID))
	_, err = svc.Load(ctx, planID, authorID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDraftIsolatedPerAuthor(t *testing.T) {
	ctx := context.Background()
	svc := NewDraftService()
	planID := uuid.New()
	first, second := uuid.New(), uuid.New()

	_, err := svc.Save(ctx, planID, first, json.RawMessage(`{"v":1}`))
	require.NoError(t, err)

	_, err = svc.Load(ctx, planID, second)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDraftRejectsInvalidJSON(t *testing.T) {
	svc := NewDraftService()
	_, err := svc.Save(context.Background(), uuid.New(), uuid.New(), json.RawMessage(`{"broken`))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDraftSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	svc := NewDraftService()
	planID, authorID := uuid.New(), uuid.New()

	_, err := svc.Save(ctx, planID, authorID, json.RawMessage(`{"v":1}`))
	require.NoError(t, err)
	_, err = svc.Save(ctx, planID, authorID, json.RawMessage(`{"v":2}`))
	require.NoError(t, err)

	loaded, err := svc.Load(ctx, planID, authorID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(loaded.Body))
}
