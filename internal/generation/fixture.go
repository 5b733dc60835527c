package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/elimufine/elimu-backend/internal/model"
)

// Default latencies of the fixture backend.
const (
	DefaultLessonDelay      = 1500 * time.Millisecond
	DefaultCertificateDelay = 500 * time.Millisecond
)

// Fixture is the deterministic, template-backed Generator. It waits for its
// configured delay and then resolves; it never fails unless the caller
// abandons the call.
type Fixture struct {
	LessonDelay      time.Duration
	CertificateDelay time.Duration
	VisualAidURL     string
	newID            func() string
}

// NewFixture creates a Fixture with the given delays.
func NewFixture(lessonDelay, certificateDelay time.Duration, visualAidURL string) *Fixture {
	return &Fixture{
		LessonDelay:      lessonDelay,
		CertificateDelay: certificateDelay,
		VisualAidURL:     visualAidURL,
		newID:            newLessonID,
	}
}

func (f *Fixture) GenerateLesson(ctx context.Context, topic, gradeLevel string) (*model.LessonContent, error) {
	if err := wait(ctx, f.LessonDelay); err != nil {
		return nil, contextFailure(OpLesson, err)
	}
	return fixtureLesson(f.newID(), topic, f.VisualAidURL), nil
}

func (f *Fixture) GenerateCertificateText(ctx context.Context, studentName, achievement string) (string, error) {
	if err := wait(ctx, f.CertificateDelay); err != nil {
		return "", contextFailure(OpCertificate, err)
	}
	return fmt.Sprintf(
		"This certificate is proudly awarded to %s for outstanding achievement in the \"%s\". "+
			"Your dedication and creativity are an inspiration to all. Well done!",
		studentName, achievement,
	), nil
}

func fixtureLesson(id, topic, visualAid string) *model.LessonContent {
	return &model.LessonContent{
		ID:        id,
		Title:     "Introduction to " + topic,
		Strand:    "Science and Technology",
		SubStrand: "Living Things",
		Content: fmt.Sprintf(
			"This lesson explores the fascinating world of %s. We will learn about their characteristics, "+
				"habitats, and importance in our ecosystem. One key aspect is understanding the difference "+
				"between various species and how they adapt to their environment. Critical thinking and "+
				"observation are key competencies you will develop.", topic),
		VisualAidReference: visualAid,
		Quiz: []model.QuizItem{
			{
				Question:      fmt.Sprintf("What is a primary characteristic of %s?", topic),
				Options:       []string{"Characteristic A", "Characteristic B", "Characteristic C", "Characteristic D"},
				CorrectAnswer: "Characteristic A",
				Kind:          model.QuizKindMultipleChoice,
			},
			{
				Question:      fmt.Sprintf("True or False: All %s live in the same environment.", topic),
				Options:       []string{"True", "False"},
				CorrectAnswer: "False",
				Kind:          model.QuizKindTrueFalse,
			},
		},
	}
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
