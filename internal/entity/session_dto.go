package entity

import "time"

type StartSessionRequest struct {
	Language string `json:"language"`
}

type SubmitMessageRequest struct {
	Text *string `json:"text"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SessionDTO struct {
	ID            string         `json:"session_id"`
	Language      Language       `json:"language"`
	State         State          `json:"state"`
	DocumentType  DocumentTypeID `json:"document_type,omitempty"`
	QuestionIndex int            `json:"question_index"`
	Fields        []Field        `json:"collected_fields"`
	History       []Turn         `json:"history"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type StartSessionResponse struct {
	Session SessionDTO `json:"session"`
	Message string     `json:"message"`
}

type MessageResponse struct {
	SessionID  string `json:"session_id"`
	Reply      string `json:"reply"`
	IsComplete bool   `json:"is_complete"`
	State      State  `json:"state"`
}

type DocumentTypeDTO struct {
	ID                  DocumentTypeID `json:"id"`
	Name                string         `json:"name"`
	Description         string         `json:"description"`
	LocalizationSupport []string       `json:"localization_support"`
	QuestionCount       int            `json:"question_count"`
}
