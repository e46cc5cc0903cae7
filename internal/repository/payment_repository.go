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

// PaymentRepository управляет записями о месячных взносах
type PaymentRepository struct {
	*base.Repository
	logger *zap.Logger
}

// NewPaymentRepository создаёт новый репозиторий
func NewPaymentRepository(pool *pgxpool.Pool, logger *zap.Logger) *PaymentRepository {
	return &PaymentRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// Upsert выставляет статус оплаты игрока за месяц
func (r *PaymentRepository) Upsert(ctx context.Context, rec *model.PaymentRecord) error {
	query := `
		INSERT INTO payment_records (club_id, player_id, year, month, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (player_id, year, month)
		DO UPDATE SET status = EXCLUDED.status, updated_at = now()
		RETURNING id, updated_at
	`

	err := r.QueryRow(
		ctx,
		query,
		rec.ClubID,
		rec.PlayerID,
		rec.Year,
		rec.Month,
		string(rec.Status),
	).Scan(&rec.ID, &rec.UpdatedAt)

	if err != nil {
		return fmt.Errorf("upsert payment record: %w", err)
	}

	return nil
}

// GetByMonth получает записи об оплате клуба за месяц
func (r *PaymentRepository) GetByMonth(ctx context.Context, clubID uuid.UUID, year, month int) ([]*model.PaymentRecord, error) {
	query := `
		SELECT id, club_id, player_id, year, month, status, updated_at
		FROM payment_records
		WHERE club_id = $1 AND year = $2 AND month = $3
		ORDER BY id
	`

	rows, err := r.Query(ctx, query, clubID, year, month)
	if err != nil {
		return nil, fmt.Errorf("get payment records by month: %w", err)
	}
	defer rows.Close()

	var records []*model.PaymentRecord
	for rows.Next() {
		rec := &model.PaymentRecord{}
		err := rows.Scan(
			&rec.ID,
			&rec.ClubID,
			&rec.PlayerID,
			&rec.Year,
			&rec.Month,
			&rec.Status,
			&rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan payment record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// GetByPlayerID получает историю оплат игрока
func (r *PaymentRepository) GetByPlayerID(ctx context.Context, playerID uuid.UUID) ([]*model.PaymentRecord, error) {
	query := `
		SELECT id, club_id, player_id, year, month, status, updated_at
		FROM payment_records
		WHERE player_id = $1
		ORDER BY year DESC, month DESC
	`

	rows, err := r.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("get payment records by player: %w", err)
	}
	defer rows.Close()

	var records []*model.PaymentRecord
	for rows.Next() {
		rec := &model.PaymentRecord{}
		err := rows.Scan(
			&rec.ID,
			&rec.ClubID,
			&rec.PlayerID,
			&rec.Year,
			&rec.Month,
			&rec.Status,
			&rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan payment record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}
