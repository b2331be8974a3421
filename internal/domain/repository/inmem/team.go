package inmem

import (
	"context"
	"database/sql"

	"codetrail/internal/common"
	"codetrail/internal/domain/model"
	"codetrail/internal/domain/repository"
)

type teamRepository struct {
	db *DB
}

func NewTeamRepository(db *DB) repository.TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) CreateTeam(_ context.Context, _ *sql.Tx, team *model.Team) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.teams[team.Slug]; ok {
		return common.Errorf("team with this slug already exists: %w", common.ErrConflict)
	}
	cp := *team
	cp.Members = append([]model.TeamMember(nil), team.Members...)
	r.db.teams[team.Slug] = &cp
	return nil
}

func (r *teamRepository) FindBySlug(_ context.Context, slug string) (*model.Team, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	t, ok := r.db.teams[slug]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *t
	cp.Members = append([]model.TeamMember(nil), t.Members...)
	return &cp, nil
}

func (r *teamRepository) AddMember(_ context.Context, _ *sql.Tx, member *model.TeamMember) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, t := range r.db.teams {
		if t.ID != member.TeamID {
			continue
		}
		for _, m := range t.Members {
			if m.UserID == member.UserID {
				return nil
			}
		}
		t.Members = append(t.Members, *member)
		return nil
	}
	return common.ErrNotFound
}

func (r *teamRepository) TeamsForUser(_ context.Context, userID string) ([]model.Team, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var teams []model.Team
	for _, t := range r.db.teams {
		if !r.belongs(t, userID) {
			continue
		}
		cp := *t
		cp.Members = append([]model.TeamMember(nil), t.Members...)
		teams = append(teams, cp)
	}
	return teams, nil
}

func (r *teamRepository) belongs(t *model.Team, userID string) bool {
	if t.CreatorID == userID {
		return true
	}
	for _, m := range t.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
