package repository

import (
	"context"
	"database/sql"
	"errors"

	"codetrail/internal/common"
	"codetrail/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type TeamRepository interface {
	CreateTeam(ctx context.Context, tx *sql.Tx, team *model.Team) error
	FindBySlug(ctx context.Context, slug string) (*model.Team, error)
	AddMember(ctx context.Context, tx *sql.Tx, member *model.TeamMember) error
	// TeamsForUser returns every team the user belongs to, as member or
	// creator, with the member list populated.
	TeamsForUser(ctx context.Context, userID string) ([]model.Team, error)
}

type pgTeamRepository struct {
	db *sql.DB
}

func NewPgTeamRepository(db *sql.DB) TeamRepository {
	return &pgTeamRepository{db: db}
}

func (r *pgTeamRepository) CreateTeam(ctx context.Context, tx *sql.Tx, team *model.Team) error {
	query := `INSERT INTO teams (id, slug, name, creator_id) VALUES ($1, $2, $3, $4)`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, team.ID, team.Slug, team.Name, team.CreatorID)
	} else {
		_, err = r.db.ExecContext(ctx, query, team.ID, team.Slug, team.Name, team.CreatorID)
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint for slug
			return common.Errorf("team with this slug already exists: %w", common.ErrConflict)
		}
		return common.Errorf("pgTeamRepository.CreateTeam: %w", err)
	}
	return nil
}

func (r *pgTeamRepository) FindBySlug(ctx context.Context, slug string) (*model.Team, error) {
	query := `SELECT id, slug, name, creator_id, created_at FROM teams WHERE slug = $1`
	team := &model.Team{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&team.ID, &team.Slug, &team.Name, &team.CreatorID, &team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, common.Errorf("pgTeamRepository.FindBySlug: %w", err)
	}
	members, err := r.membersForTeam(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	team.Members = members
	return team, nil
}

func (r *pgTeamRepository) AddMember(ctx context.Context, tx *sql.Tx, member *model.TeamMember) error {
	query := `INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)
	          ON CONFLICT (team_id, user_id) DO NOTHING`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, member.TeamID, member.UserID)
	} else {
		_, err = r.db.ExecContext(ctx, query, member.TeamID, member.UserID)
	}
	if err != nil {
		return common.Errorf("pgTeamRepository.AddMember: %w", err)
	}
	return nil
}

func (r *pgTeamRepository) TeamsForUser(ctx context.Context, userID string) ([]model.Team, error) {
	query := `SELECT DISTINCT t.id, t.slug, t.name, t.creator_id, t.created_at
	          FROM teams t
	          LEFT JOIN team_members tm ON t.id = tm.team_id
	          WHERE tm.user_id = $1 OR t.creator_id = $1
	          ORDER BY t.created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, common.Errorf("pgTeamRepository.TeamsForUser query: %w", err)
	}
	defer rows.Close()

	var teams []model.Team
	for rows.Next() {
		var t model.Team
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name, &t.CreatorID, &t.CreatedAt); err != nil {
			return nil, common.Errorf("pgTeamRepository.TeamsForUser scan: %w", err)
		}
		teams = append(teams, t)
	}
	if err = rows.Err(); err != nil {
		return nil, common.Errorf("pgTeamRepository.TeamsForUser rows.Err: %w", err)
	}

	for i := range teams {
		members, err := r.membersForTeam(ctx, teams[i].ID)
		if err != nil {
			return nil, err
		}
		teams[i].Members = members
	}
	return teams, nil
}

func (r *pgTeamRepository) membersForTeam(ctx context.Context, teamID string) ([]model.TeamMember, error) {
	query := `SELECT tm.team_id, tm.user_id, u.username, tm.joined_at
	          FROM team_members tm
	          JOIN users u ON tm.user_id = u.id
	          WHERE tm.team_id = $1
	          ORDER BY tm.joined_at ASC`
	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, common.Errorf("pgTeamRepository.membersForTeam query: %w", err)
	}
	defer rows.Close()

	var members []model.TeamMember
	for rows.Next() {
		var m model.TeamMember
		if err := rows.Scan(&m.TeamID, &m.UserID, &m.Username, &m.JoinedAt); err != nil {
			return nil, common.Errorf("pgTeamRepository.membersForTeam scan: %w", err)
		}
		members = append(members, m)
	}
	if err = rows.Err(); err != nil {
		return nil, common.Errorf("pgTeamRepository.membersForTeam rows.Err: %w", err)
	}
	return members, nil
}
