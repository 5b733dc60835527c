package websocket

import "github.com/elimufine/elimu-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionGenerateLesson      Action = "generate_lesson"
	ActionGenerateCertificate Action = "generate_certificate"
	ActionPing                Action = "ping"
)

// RequestPayload carries every client action. Only the fields of the named
// action are read.
type RequestPayload struct {
	Action    Action `json:"action"`
	RequestID string `json:"request_id,omitempty"`

	// generate_lesson
	Topic      string `json:"topic,omitempty"`
	GradeLevel string `json:"grade_level,omitempty"`

	// generate_certificate
	StudentName string `json:"student_name,omitempty"`
	Achievement string `json:"achievement,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventPending     Event = "pending"
	EventLesson      Event = "lesson"
	EventCertificate Event = "certificate"
	EventError       Event = "error"
	EventPong        Event = "pong"
)

// PendingResponse acknowledges an accepted generation action. Exactly one
// lesson, certificate or error event with the same request_id follows.
type PendingResponse struct {
	Event     Event  `json:"event"`
	RequestID string `json:"request_id"`
	Action    Action `json:"action"`
}

type LessonResponse struct {
	Event     Event                `json:"event"`
	RequestID string               `json:"request_id"`
	Lesson    *model.LessonContent `json:"lesson"`
}

type CertificateResponse struct {
	Event           Event  `json:"event"`
	RequestID       string `json:"request_id"`
	CertificateText string `json:"certificate_text"`
}

type ErrorResponse struct {
	Event     Event             `json:"event"`
	RequestID string            `json:"request_id,omitempty"`
	Code      string            `json:"code"`
	Error     string            `json:"error"`
	Fields    map[string]string `json:"fields,omitempty"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
