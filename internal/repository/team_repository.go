package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
	"github.com/ndorofeev/clubdesk_backend/internal/repository/base"
)

// TeamRepository управляет командами клуба в базе данных
type TeamRepository struct {
	*base.Repository
	logger *zap.Logger
}

// NewTeamRepository создаёт новый репозиторий
func NewTeamRepository(pool *pgxpool.Pool, logger *zap.Logger) *TeamRepository {
	return &TeamRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// Create создаёт новую команду
func (r *TeamRepository) Create(ctx context.Context, team *model.Team) error {
	query := `
		INSERT INTO teams (id, club_id, name, age_group, coach_name, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}

	err := r.QueryRow(
		ctx,
		query,
		team.ID,
		team.ClubID,
		team.Name,
		team.AgeGroup,
		team.CoachName,
		team.IsActive,
	).Scan(&team.CreatedAt, &team.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create team: %w", err)
	}

	return nil
}

// GetByID получает команду по ID
func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	query := `
		SELECT id, club_id, name, age_group, coach_name, is_active, created_at, updated_at
		FROM teams
		WHERE id = $1
	`

	team := &model.Team{}
	err := r.QueryRow(ctx, query, id).Scan(
		&team.ID,
		&team.ClubID,
		&team.Name,
		&team.AgeGroup,
		&team.CoachName,
		&team.IsActive,
		&team.CreatedAt,
		&team.UpdatedAt,
	)

	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get team by id: %w", err)
	}

	return team, nil
}

// GetByClubID получает все команды клуба
func (r *TeamRepository) GetByClubID(ctx context.Context, clubID uuid.UUID) ([]*model.Team, error) {
	query := `
		SELECT id, club_id, name, age_group, coach_name, is_active, created_at, updated_at
		FROM teams
		WHERE club_id = $1
		ORDER BY name
	`

	rows, err := r.Query(ctx, query, clubID)
	if err != nil {
		return nil, fmt.Errorf("get teams by club: %w", err)
	}
	defer rows.Close()

	var teams []*model.Team
	for rows.Next() {
		team := &model.Team{}
		err := rows.Scan(
			&team.ID,
			&team.ClubID,
			&team.Name,
			&team.AgeGroup,
			&team.CoachName,
			&team.IsActive,
			&team.CreatedAt,
			&team.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, nil
}

// Update обновляет команду
func (r *TeamRepository) Update(ctx context.Context, team *model.Team) error {
	query := `
		UPDATE teams
		SET name = $2, age_group = $3, coach_name = $4, is_active = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.QueryRow(
		ctx,
		query,
		team.ID,
		team.Name,
		team.AgeGroup,
		team.CoachName,
		team.IsActive,
	).Scan(&team.UpdatedAt)

	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}

	return nil
}

// Delete удаляет команду (игроки и события удалятся каскадом)
func (r *TeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM teams WHERE id = $1`

	_, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	return nil
}
