package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rentx/internal/db"
	apperr "rentx/internal/errors"
)

type MessageRepository struct {
	DB *sql.DB
}

func NewMessageRepository(database *sql.DB) *MessageRepository {
	return &MessageRepository{DB: database}
}

func (r *MessageRepository) Create(ctx context.Context, m *db.Message) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO messages (name, email, subject, body, status, created_at)
		VALUES ($1, $2, $3, $4, 'unread', NOW())
		RETURNING id, status, created_at`,
		m.Name, m.Email, m.Subject, m.Body,
	).Scan(&m.ID, &m.Status, &m.CreatedAt)
	if err != nil {
		return apperr.Storage(fmt.Errorf("error creating message: %w", err))
	}
	return nil
}

func (r *MessageRepository) List(ctx context.Context) ([]db.Message, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, email, subject, body, status, created_at
		FROM messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperr.Storage(fmt.Errorf("error listing messages: %w", err))
	}
	defer rows.Close()

	var messages []db.Message
	for rows.Next() {
		var m db.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.Status, &m.CreatedAt); err != nil {
			return nil, apperr.Storage(fmt.Errorf("error scanning message: %w", err))
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(fmt.Errorf("error iterating messages: %w", err))
	}
	return messages, nil
}

// ToggleStatus flips read/unread and returns the updated row.
func (r *MessageRepository) ToggleStatus(ctx context.Context, id int) (*db.Message, error) {
	var m db.Message
	err := r.DB.QueryRowContext(ctx, `
		UPDATE messages
		SET status = CASE WHEN status = 'read' THEN 'unread' ELSE 'read' END
		WHERE id = $1
		RETURNING id, name, email, subject, body, status, created_at`, id).
		Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.Status, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound(fmt.Sprintf("message %d not found", id))
		}
		return nil, apperr.Storage(fmt.Errorf("error updating message: %w", err))
	}
	return &m, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return apperr.Storage(fmt.Errorf("error deleting message: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage(err)
	}
	if affected == 0 {
		return apperr.NotFound(fmt.Sprintf("message %d not found", id))
	}
	return nil
}
