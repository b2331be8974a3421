package service

import (
	"context"
	"testing"

	"codetrail/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTeam_SlugifiesNameAndEnrollsMembers(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", nil, nil)
	bob := env.createUser(t, "bob", nil, nil)

	team, err := env.teamSvc.CreateTeam(context.Background(), alice.ID, CreateTeamRequest{
		Name:    "The Rubyists",
		Members: []string{"bob"},
	})
	require.NoError(t, err)

	assert.Equal(t, "the-rubyists", team.Slug)
	assert.Equal(t, alice.ID, team.CreatorID)
	require.Len(t, team.Members, 1)
	assert.Equal(t, bob.ID, team.Members[0].UserID)
}

func TestCreateTeam_UnknownMemberFails(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", nil, nil)

	_, err := env.teamSvc.CreateTeam(context.Background(), alice.ID, CreateTeamRequest{
		Name:    "ghosts",
		Members: []string{"nobody"},
	})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestAddMember_IsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", nil, nil)
	bob := env.createUser(t, "bob", nil, nil)
	team := env.createTeam(t, "solo", alice)

	_, err := env.teamSvc.AddMember(context.Background(), team.Slug, bob.Username)
	require.NoError(t, err)
	updated, err := env.teamSvc.AddMember(context.Background(), team.Slug, bob.Username)
	require.NoError(t, err)

	assert.Len(t, updated.Members, 1)
}
