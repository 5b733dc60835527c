package handler

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/elimufine/elimu-backend/internal/model"
	"github.com/elimufine/elimu-backend/internal/response"
	"github.com/elimufine/elimu-backend/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

// stubGenerator answers from fixed values, or blocks until the context ends
// when block is set.
type stubGenerator struct {
	lesson *model.LessonContent
	text   string
	err    error
	block  bool

	mu       sync.Mutex
	canceled chan struct{}
}

func (s *stubGenerator) wait(ctx context.Context) error {
	if !s.block {
		return nil
	}
	<-ctx.Done()
	s.mu.Lock()
	if s.canceled != nil {
		close(s.canceled)
		s.canceled = nil
	}
	s.mu.Unlock()
	return ctx.Err()
}

func (s *stubGenerator) GenerateLesson(ctx context.Context, topic, grade string) (*model.LessonContent, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.lesson, s.err
}

func (s *stubGenerator) GenerateCertificateText(ctx context.Context, name, achievement string) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	return s.text, s.err
}

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(response.RequestIDMiddleware())
	return r
}
