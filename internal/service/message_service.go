package service

import (
	"context"
	"database/sql"
	"log"
	"os"

	"rentx/internal/db"
	"rentx/internal/entities"
)

type MessageStore interface {
	Create(ctx context.Context, m *db.Message) error
	List(ctx context.Context) ([]db.Message, error)
	ToggleStatus(ctx context.Context, id int) (*db.Message, error)
	Delete(ctx context.Context, id int) error
}

type MessageService struct {
	messages MessageStore
}

func NewMessageService(messages MessageStore) *MessageService {
	return &MessageService{messages: messages}
}

func (s *MessageService) Create(ctx context.Context, req entities.CreateMessageRequest) (*entities.MessageResponse, error) {
	m := &db.Message{
		Name:  req.Name,
		Email: req.Email,
		Body:  req.Message,
	}
	if req.Subject != "" {
		m.Subject = sql.NullString{String: req.Subject, Valid: true}
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}

	// Forward the contact message to the back office inbox. Failures only log.
	if inbox := os.Getenv("CONTACT_INBOX_EMAIL"); inbox != "" {
		subject := "New contact message from " + req.Name
		body := "From: " + req.Name + " <" + req.Email + ">\n\n" + req.Message
		go func() {
			if err := SendEmailWithSendGrid(inbox, "RentX Admin", subject, body, ""); err != nil {
				log.Printf("failed to forward contact message %d: %v", m.ID, err)
			}
		}()
	}

	resp := messageResponse(m)
	return &resp, nil
}

func (s *MessageService) List(ctx context.Context) ([]entities.MessageResponse, error) {
	messages, err := s.messages.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entities.MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, messageResponse(&messages[i]))
	}
	return out, nil
}

func (s *MessageService) ToggleStatus(ctx context.Context, id int) (*entities.MessageResponse, error) {
	m, err := s.messages.ToggleStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := messageResponse(m)
	return &resp, nil
}

func (s *MessageService) Delete(ctx context.Context, id int) error {
	return s.messages.Delete(ctx, id)
}

func messageResponse(m *db.Message) entities.MessageResponse {
	resp := entities.MessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Body,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
	}
	if m.Subject.Valid {
		resp.Subject = m.Subject.String
	}
	return resp
}
