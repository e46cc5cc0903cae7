package repository

import (
	"fmt"
	"time"

	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ndorofeev/clubdesk_backend/internal/model"
	"github.com/ndorofeev/clubdesk_backend/internal/repository/base"
)

// ActivityRepository управляет событиями клуба в базе данных
type ActivityRepository struct {
	*base.Repository
	logger *zap.Logger
}

// NewActivityRepository создаёт новый репозиторий
func NewActivityRepository(pool *pgxpool.Pool, logger *zap.Logger) *ActivityRepository {
	return &ActivityRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

const activityColumns = `id, club_id, team_id, title, type, location, start_time, duration_text,
	is_repeating, repeat_type, repeat_days, repeat_until, created_at, updated_at`

// Create создаёт новое событие
func (r *ActivityRepository) Create(ctx context.Context, a *model.Activity) error {
	query := `
		INSERT INTO activities (id, club_id, team_id, title, type, location, start_time, duration_text, is_repeating, repeat_type, repeat_days, repeat_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	err := r.QueryRow(
		ctx,
		query,
		a.ID,
		a.ClubID,
		a.TeamID,
		a.Title,
		string(a.Type),
		a.Location,
		a.StartTime,
		a.DurationText,
		a.IsRepeating,
		nullableRepeatType(a),
		repeatDaysToDB(a.RepeatDays),
		a.RepeatUntil,
	).Scan(&a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create activity: %w", err)
	}

	return nil
}

// GetByID получает событие по ID
func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*model.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = $1`

	a, err := scanActivity(r.QueryRow(ctx, query, id))
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get activity by id: %w", err)
	}

	return a, nil
}

// GetForRange получает события клуба, пересекающие интервал дат.
// teamID == nil означает все команды клуба
func (r *ActivityRepository) GetForRange(ctx context.Context, clubID uuid.UUID, teamID *uuid.UUID, from, to time.Time) ([]*model.Activity, error) {
	query := `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE club_id = $1
		  AND ($2::uuid IS NULL OR team_id = $2)
		  AND start_time < $4
		  AND (
			(NOT is_repeating AND start_time >= $3)
			OR (is_repeating AND (repeat_until IS NULL OR repeat_until >= $3))
		  )
		ORDER BY start_time
	`

	rows, err := r.Query(ctx, query, clubID, teamID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get activities for range: %w", err)
	}
	defer rows.Close()

	return collectActivities(rows)
}

// GetByTeamID получает все события команды
func (r *ActivityRepository) GetByTeamID(ctx context.Context, teamID uuid.UUID) ([]*model.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE team_id = $1 ORDER BY start_time`

	rows, err := r.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("get activities by team: %w", err)
	}
	defer rows.Close()

	return collectActivities(rows)
}

// Update обновляет событие
func (r *ActivityRepository) Update(ctx context.Context, a *model.Activity) error {
	query := `
		UPDATE activities
		SET title = $2, type = $3, location = $4, start_time = $5, duration_text = $6,
		    is_repeating = $7, repeat_type = $8, repeat_days = $9, repeat_until = $10,
		    updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.QueryRow(
		ctx,
		query,
		a.ID,
		a.Title,
		string(a.Type),
		a.Location,
		a.StartTime,
		a.DurationText,
		a.IsRepeating,
		nullableRepeatType(a),
		repeatDaysToDB(a.RepeatDays),
		a.RepeatUntil,
	).Scan(&a.UpdatedAt)

	if err != nil {
		return fmt.Errorf("update activity: %w", err)
	}

	return nil
}

// Delete удаляет событие (отметки посещаемости удалятся каскадом)
func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM activities WHERE id = $1`

	_, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}

	return nil
}

// scanActivity читает одну строку события, разворачивая nullable колонки
func scanActivity(row pgx.Row) (*model.Activity, error) {
	a := &model.Activity{}
	var repeatType *string
	var repeatDays []int32

	err := row.Scan(
		&a.ID,
		&a.ClubID,
		&a.TeamID,
		&a.Title,
		&a.Type,
		&a.Location,
		&a.StartTime,
		&a.DurationText,
		&a.IsRepeating,
		&repeatType,
		&repeatDays,
		&a.RepeatUntil,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if repeatType != nil {
		a.RepeatType = model.RepeatType(*repeatType)
	}
	for _, d := range repeatDays {
		a.RepeatDays = append(a.RepeatDays, int(d))
	}

	return a, nil
}

func collectActivities(rows pgx.Rows) ([]*model.Activity, error) {
	var activities []*model.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, nil
}

func nullableRepeatType(a *model.Activity) *string {
	if !a.IsRepeating || a.RepeatType == "" {
		return nil
	}
	s := string(a.RepeatType)
	return &s
}

func repeatDaysToDB(days []int) []int32 {
	if len(days) == 0 {
		return nil
	}
	out := make([]int32, len(days))
	for i, d := range days {
		out[i] = int32(d)
	}
	return out
}
