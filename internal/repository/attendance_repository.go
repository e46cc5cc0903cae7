package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
	"github.com/ndorofeev/clubdesk_backend/internal/repository/base"
)

// AttendanceRepository управляет отметками посещаемости в базе данных
type AttendanceRepository struct {
	*base.Repository
	logger *zap.Logger
}

// NewAttendanceRepository создаёт новый репозиторий
func NewAttendanceRepository(pool *pgxpool.Pool, logger *zap.Logger) *AttendanceRepository {
	return &AttendanceRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// Upsert создаёт или обновляет отметку игрока на вхождении события
func (r *AttendanceRepository) Upsert(ctx context.Context, rec *model.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (club_id, activity_id, player_id, status, actual_date, marked_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (activity_id, player_id)
		DO UPDATE SET status = EXCLUDED.status, actual_date = EXCLUDED.actual_date, marked_by = EXCLUDED.marked_by
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx,
		query,
		rec.ClubID,
		rec.ActivityID,
		rec.PlayerID,
		string(rec.Status),
		rec.ActualDate,
		rec.MarkedBy,
	).Scan(&rec.ID, &rec.CreatedAt)

	if err != nil {
		return fmt.Errorf("upsert attendance record: %w", err)
	}

	return nil
}

// GetByClubForRange получает отметки клуба за интервал [from, to).
// Верхняя граница эксклюзивна: вызывающий передаёт полночь дня,
// следующего за последним днём интервала
func (r *AttendanceRepository) GetByClubForRange(ctx context.Context, clubID uuid.UUID, from, to time.Time) ([]model.AttendanceRecord, error) {
	query := `
		SELECT id, club_id, activity_id, player_id, status, actual_date, marked_by, created_at
		FROM attendance_records
		WHERE club_id = $1 AND actual_date >= $2 AND actual_date < $3
		ORDER BY actual_date, id
	`

	rows, err := r.Query(ctx, query, clubID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get attendance records for range: %w", err)
	}
	defer rows.Close()

	var records []model.AttendanceRecord
	for rows.Next() {
		var rec model.AttendanceRecord
		err := rows.Scan(
			&rec.ID,
			&rec.ClubID,
			&rec.ActivityID,
			&rec.PlayerID,
			&rec.Status,
			&rec.ActualDate,
			&rec.MarkedBy,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// GetByActivityID получает отметки по идентификатору вхождения
// (составному или голому)
func (r *AttendanceRepository) GetByActivityID(ctx context.Context, activityID string) ([]model.AttendanceRecord, error) {
	query := `
		SELECT id, club_id, activity_id, player_id, status, actual_date, marked_by, created_at
		FROM attendance_records
		WHERE activity_id = $1
		ORDER BY id
	`

	rows, err := r.Query(ctx, query, activityID)
	if err != nil {
		return nil, fmt.Errorf("get attendance records by activity: %w", err)
	}
	defer rows.Close()

	var records []model.AttendanceRecord
	for rows.Next() {
		var rec model.AttendanceRecord
		err := rows.Scan(
			&rec.ID,
			&rec.ClubID,
			&rec.ActivityID,
			&rec.PlayerID,
			&rec.Status,
			&rec.ActualDate,
			&rec.MarkedBy,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// Delete удаляет отметку, принадлежащую клубу.
// Условие по club_id защищает от удаления чужих записей по угаданному id
func (r *AttendanceRepository) Delete(ctx context.Context, id int64, clubID uuid.UUID) error {
	query := `DELETE FROM attendance_records WHERE id = $1 AND club_id = $2`

	affected, err := r.ExecAffected(ctx, query, id, clubID)
	if err != nil {
		return fmt.Errorf("delete attendance record: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("attendance record not found")
	}

	return nil
}
