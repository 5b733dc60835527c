// Package generation is the content generation boundary: it turns a topic
// and grade, or a name and achievement, into display-ready lesson content or
// certificate wording. Callers depend on Generator only; the mock fixture and
// the Gemini adapter are interchangeable behind it.
package generation

import (
	"context"

	"github.com/elimufine/elimu-backend/internal/model"
)

// Operation names used in failures, logs and metrics.
const (
	OpLesson      = "generate_lesson"
	OpCertificate = "generate_certificate"
)

// Generator produces lesson content and certificate wording.
//
// Both calls suspend until the backend resolves or ctx is done. A failed
// call returns a *Failure and never a partially built value. Implementations
// hold no per-call state, so a Generator is safe for concurrent use.
type Generator interface {
	GenerateLesson(ctx context.Context, topic, gradeLevel string) (*model.LessonContent, error)
	GenerateCertificateText(ctx context.Context, studentName, achievement string) (string, error)
}
