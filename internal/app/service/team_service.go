package service

import (
	"context"
	"database/sql"
	"time"

	"codetrail/internal/common"
	"codetrail/internal/domain/model"
	"codetrail/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type TeamService struct {
	teamRepo   repository.TeamRepository
	userRepo   repository.UserRepository
	transactor repository.Transactor
}

func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository, transactor repository.Transactor) *TeamService {
	return &TeamService{teamRepo: teamRepo, userRepo: userRepo, transactor: transactor}
}

type CreateTeamRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"` // Usernames
}

// CreateTeam creates a team owned by creatorID and enrolls the named members.
func (s *TeamService) CreateTeam(ctx context.Context, creatorID string, req CreateTeamRequest) (*model.Team, error) {
	if req.Name == "" {
		return nil, common.ErrBadRequest
	}

	team := &model.Team{
		ID:        uuid.NewString(),
		Slug:      slug.Make(req.Name),
		Name:      req.Name,
		CreatorID: creatorID,
		CreatedAt: time.Now().UTC(),
	}

	members := make([]model.TeamMember, 0, len(req.Members))
	for _, username := range req.Members {
		user, err := s.userRepo.FindByUsername(ctx, username)
		if err != nil {
			return nil, common.Errorf("unknown team member %q: %w", username, err)
		}
		members = append(members, model.TeamMember{
			TeamID:   team.ID,
			UserID:   user.ID,
			Username: user.Username,
			JoinedAt: team.CreatedAt,
		})
	}

	err := s.transactor.WithinTx(ctx, func(tx *sql.Tx) error {
		if err := s.teamRepo.CreateTeam(ctx, tx, team); err != nil {
			return err
		}
		for i := range members {
			if err := s.teamRepo.AddMember(ctx, tx, &members[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	team.Members = members
	return team, nil
}

// AddMember enrolls one more user into an existing team.
func (s *TeamService) AddMember(ctx context.Context, teamSlug, username string) (*model.Team, error) {
	team, err := s.teamRepo.FindBySlug(ctx, teamSlug)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, common.Errorf("unknown team member %q: %w", username, err)
	}

	member := &model.TeamMember{
		TeamID:   team.ID,
		UserID:   user.ID,
		Username: user.Username,
		JoinedAt: time.Now().UTC(),
	}
	if err := s.teamRepo.AddMember(ctx, nil, member); err != nil {
		return nil, err
	}
	return s.teamRepo.FindBySlug(ctx, teamSlug)
}

func (s *TeamService) GetTeam(ctx context.Context, teamSlug string) (*model.Team, error) {
	return s.teamRepo.FindBySlug(ctx, teamSlug)
}
