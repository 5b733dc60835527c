package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/elimufine/elimu-backend/internal/generation"
	"github.com/elimufine/elimu-backend/internal/model"
)

// GenerationService checks caller input before handing it to the generator.
// Generator failures are returned untouched.
type GenerationService struct {
	gen generation.Generator
	log zerolog.Logger
}

func NewGenerationService(gen generation.Generator, log zerolog.Logger) *GenerationService {
	return &GenerationService{
		gen: gen,
		log: log.With().Str("component", "generation_service").Logger(),
	}
}

// GenerateLesson trims topic and requires it non-blank with a grade in 1..8.
func (s *GenerationService) GenerateLesson(ctx context.Context, topic, gradeLevel string) (*model.LessonContent, error) {
	topic = strings.TrimSpace(topic)
	gradeLevel = strings.TrimSpace(gradeLevel)

	fields := make(map[string]string)
	if topic == "" {
		fields["topic"] = "topic is required"
	}
	if !model.ValidGradeLevel(gradeLevel) {
		fields["grade_level"] = "grade_level must be a grade from 1 to 8"
	}
	if len(fields) > 0 {
		s.log.Debug().Interface("fields", fields).Msg("Lesson request rejected")
		return nil, &generation.ValidationError{Fields: fields}
	}

	return s.gen.GenerateLesson(ctx, topic, gradeLevel)
}

// GenerateCertificate requires a non-blank student name and achievement.
func (s *GenerationService) GenerateCertificate(ctx context.Context, studentName, achievement string) (string, error) {
	studentName = strings.TrimSpace(studentName)
	achievement = strings.TrimSpace(achievement)

	fields := make(map[string]string)
	if studentName == "" {
		fields["student_name"] = "student_name is required"
	}
	if achievement == "" {
		fields["achievement"] = "achievement is required"
	}
	if len(fields) > 0 {
		s.log.Debug().Interface("fields", fields).Msg("Certificate request rejected")
		return "", &generation.ValidationError{Fields: fields}
	}

	return s.gen.GenerateCertificateText(ctx, studentName, achievement)
}
