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

// ClubRepository управляет клубами в базе данных
type ClubRepository struct {
	*base.Repository
	logger *zap.Logger
}

// NewClubRepository создаёт новый репозиторий
func NewClubRepository(pool *pgxpool.Pool, logger *zap.Logger) *ClubRepository {
	return &ClubRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// Create создаёт новый клуб
func (r *ClubRepository) Create(ctx context.Context, club *model.Club) error {
	query := `
		INSERT INTO clubs (id, name, city)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	if club.ID == uuid.Nil {
		club.ID = uuid.New()
	}

	err := r.QueryRow(ctx, query, club.ID, club.Name, club.City).
		Scan(&club.CreatedAt, &club.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create club: %w", err)
	}

	return nil
}

// GetByID получает клуб по ID
func (r *ClubRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Club, error) {
	query := `SELECT id, name, city, created_at, updated_at FROM clubs WHERE id = $1`

	club := &model.Club{}
	err := r.QueryRow(ctx, query, id).Scan(
		&club.ID,
		&club.Name,
		&club.City,
		&club.CreatedAt,
		&club.UpdatedAt,
	)

	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get club by id: %w", err)
	}

	return club, nil
}

// GetAll получает все клубы (только для superadmin)
func (r *ClubRepository) GetAll(ctx context.Context) ([]*model.Club, error) {
	query := `SELECT id, name, city, created_at, updated_at FROM clubs ORDER BY name`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all clubs: %w", err)
	}
	defer rows.Close()

	var clubs []*model.Club
	for rows.Next() {
		club := &model.Club{}
		err := rows.Scan(
			&club.ID,
			&club.Name,
			&club.City,
			&club.CreatedAt,
			&club.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan club: %w", err)
		}
		clubs = append(clubs, club)
	}

	return clubs, nil
}
