package store

import (
	"context"
	"time"

	"application-tracker-api/internal/model"
)

const appCols = `id, user_id, title, type, status, deadline, notes, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(row scanner, a *model.Application) error {
	return row.Scan(&a.ID, &a.UserID, &a.Title, &a.Type, &a.Status,
		&a.Deadline, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
}

// CreateApplication fills in the stored deadline (microsecond precision) and
// the timestamps.
func (s *Store) CreateApplication(ctx context.Context, a *model.Application) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO applications (id, user_id, title, type, status, deadline, notes)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 RETURNING deadline, created_at, updated_at`,
		a.ID, a.UserID, a.Title, a.Type, a.Status, a.Deadline, a.Notes,
	).Scan(&a.Deadline, &a.CreatedAt, &a.UpdatedAt)
}

// ListApplications returns a user's applications, soonest deadline first and
// deadline-less ones last. An empty status means no filter.
func (s *Store) ListApplications(ctx context.Context, userID, status string) ([]model.Application, error) {
	q := `SELECT ` + appCols + ` FROM applications WHERE user_id = $1`
	args := []any{userID}
	if status != "" {
		q += ` AND status = $2`
		args = append(args, status)
	}
	q += ` ORDER BY deadline ASC NULLS LAST, created_at`

	return s.queryApplications(ctx, q, args...)
}

func (s *Store) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	a := &model.Application{}
	err := scanApplication(s.pool.QueryRow(ctx,
		`SELECT `+appCols+` FROM applications WHERE id = $1`, id), a)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

// UpdateApplication writes every mutable field; ownership is part of the WHERE.
func (s *Store) UpdateApplication(ctx context.Context, a *model.Application) error {
	err := s.pool.QueryRow(ctx,
		`UPDATE applications
		 SET title=$1, type=$2, status=$3, deadline=$4, notes=$5, updated_at=NOW()
		 WHERE id=$6 AND user_id=$7
		 RETURNING deadline, created_at, updated_at`,
		a.Title, a.Type, a.Status, a.Deadline, a.Notes, a.ID, a.UserID,
	).Scan(&a.Deadline, &a.CreatedAt, &a.UpdatedAt)
	return notFound(err)
}

func (s *Store) DeleteApplication(ctx context.Context, id, userID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM applications WHERE id=$1 AND user_id=$2`, id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplicationsWithFutureDeadline feeds reminder recovery.
func (s *Store) ApplicationsWithFutureDeadline(ctx context.Context, now time.Time) ([]model.Application, error) {
	return s.queryApplications(ctx,
		`SELECT `+appCols+` FROM applications WHERE deadline > $1 ORDER BY deadline`, now)
}

func (s *Store) ApplicationStats(ctx context.Context, userID string, now time.Time) (*model.Stats, error) {
	st := &model.Stats{}
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE deadline > $2)
		 FROM applications WHERE user_id = $1`, userID, now,
	).Scan(&st.Total, &st.Upcoming)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM applications
		 WHERE user_id = $1 GROUP BY status ORDER BY status`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c model.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		st.ByStatus = append(st.ByStatus, c)
	}
	return st, rows.Err()
}

func (s *Store) queryApplications(ctx context.Context, q string, args ...any) ([]model.Application, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Application
	for rows.Next() {
		var a model.Application
		if err := scanApplication(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
