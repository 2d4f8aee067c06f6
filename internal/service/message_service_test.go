package service

import (
	"testing"

	"github.com/connecthq/connect/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOtherParticipant(t *testing.T) {
	conv := &model.Conversation{ID: 1, User1ID: 3, User2ID: 8}

	other, err := otherParticipant(conv, 3)
	require.NoError(t, err)
	assert.Equal(t, 8, other)

	other, err = otherParticipant(conv, 8)
	require.NoError(t, err)
	assert.Equal(t, 3, other)
}

func TestOtherParticipant_NotAParticipant(t *testing.T) {
	conv := &model.Conversation{ID: 1, User1ID: 3, User2ID: 8}

	_, err := otherParticipant(conv, 5)
	assert.EqualError(t, err, "conversation not found")
}
