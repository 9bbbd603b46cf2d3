package api

import "time"

// ChangeMessage is a single push notification of the /api/v1/changes websocket.
// Pointer fields distinguish an absent key from its zero value; the client
// classifies messages by presence of error, warnings, filename and updated_at.
type ChangeMessage struct {
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
	Error      *string    `json:"error,omitempty"`
	Filename   *string    `json:"filename,omitempty"`
	UpdatedMML *bool      `json:"updated_mml,omitempty"`
	WsID       string     `json:"wsid,omitempty"`       // идентификатор соединения, первое сообщение
	FullError  string     `json:"full_error,omitempty"` // полный текст ошибки парсинга
	MML        string     `json:"mml,omitempty"`
	Warnings   []string   `json:"warnings,omitempty"`
	Files      []string   `json:"files,omitempty"` // отсутствующие файлы
	MSS        []string   `json:"mss,omitempty"`
	Line       int        `json:"line,omitempty"`
	Column     int        `json:"column,omitempty"`
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time { return &t }
