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

// PlayerRepository управляет игроками клуба в базе данных
type PlayerRepository struct {
	*base.Repository
	logger *zap.Logger
}

// NewPlayerRepository создаёт новый репозиторий
func NewPlayerRepository(pool *pgxpool.Pool, logger *zap.Logger) *PlayerRepository {
	return &PlayerRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// Create создаёт нового игрока
func (r *PlayerRepository) Create(ctx context.Context, player *model.Player) error {
	query := `
		INSERT INTO players (id, club_id, team_id, first_name, last_name, birth_date, parent_name, parent_phone, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	if player.ID == uuid.Nil {
		player.ID = uuid.New()
	}

	err := r.QueryRow(
		ctx,
		query,
		player.ID,
		player.ClubID,
		player.TeamID,
		player.FirstName,
		player.LastName,
		player.BirthDate,
		player.ParentName,
		player.ParentPhone,
		player.IsActive,
	).Scan(&player.CreatedAt, &player.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create player: %w", err)
	}

	return nil
}

// GetByID получает игрока по ID
func (r *PlayerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Player, error) {
	query := `
		SELECT id, club_id, team_id, first_name, last_name, birth_date, parent_name, parent_phone, is_active, created_at, updated_at
		FROM players
		WHERE id = $1
	`

	player := &model.Player{}
	err := r.QueryRow(ctx, query, id).Scan(
		&player.ID,
		&player.ClubID,
		&player.TeamID,
		&player.FirstName,
		&player.LastName,
		&player.BirthDate,
		&player.ParentName,
		&player.ParentPhone,
		&player.IsActive,
		&player.CreatedAt,
		&player.UpdatedAt,
	)

	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get player by id: %w", err)
	}

	return player, nil
}

// GetByClubID получает игроков клуба. teamID == nil означает все команды
func (r *PlayerRepository) GetByClubID(ctx context.Context, clubID uuid.UUID, teamID *uuid.UUID) ([]*model.Player, error) {
	query := `
		SELECT id, club_id, team_id, first_name, last_name, birth_date, parent_name, parent_phone, is_active, created_at, updated_at
		FROM players
		WHERE club_id = $1 AND ($2::uuid IS NULL OR team_id = $2)
		ORDER BY last_name, first_name
	`

	rows, err := r.Query(ctx, query, clubID, teamID)
	if err != nil {
		return nil, fmt.Errorf("get players by club: %w", err)
	}
	defer rows.Close()

	var players []*model.Player
	for rows.Next() {
		player := &model.Player{}
		err := rows.Scan(
			&player.ID,
			&player.ClubID,
			&player.TeamID,
			&player.FirstName,
			&player.LastName,
			&player.BirthDate,
			&player.ParentName,
			&player.ParentPhone,
			&player.IsActive,
			&player.CreatedAt,
			&player.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, player)
	}

	return players, nil
}

// Update обновляет игрока
func (r *PlayerRepository) Update(ctx context.Context, player *model.Player) error {
	query := `
		UPDATE players
		SET team_id = $2, first_name = $3, last_name = $4, birth_date = $5,
		    parent_name = $6, parent_phone = $7, is_active = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.QueryRow(
		ctx,
		query,
		player.ID,
		player.TeamID,
		player.FirstName,
		player.LastName,
		player.BirthDate,
		player.ParentName,
		player.ParentPhone,
		player.IsActive,
	).Scan(&player.UpdatedAt)

	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}

	return nil
}

// Deactivate помечает игрока неактивным (выбыл из клуба)
func (r *PlayerRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE players SET is_active = false, updated_at = now() WHERE id = $1`

	_, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate player: %w", err)
	}

	return nil
}
