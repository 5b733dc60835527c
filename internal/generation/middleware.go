package generation

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/elimufine/elimu-backend/internal/metrics"
	"github.com/elimufine/elimu-backend/internal/model"
)

// WithTimeout bounds every call of g by d. An expired call fails with
// KindTimeout and its late result, if any, is discarded.
func WithTimeout(g Generator, d time.Duration) Generator {
	if d <= 0 {
		return g
	}
	return &timeoutGenerator{next: g, timeout: d}
}

type timeoutGenerator struct {
	next    Generator
	timeout time.Duration
}

type lessonResult struct {
	lesson *model.LessonContent
	err    error
}

type textResult struct {
	text string
	err  error
}

func (t *timeoutGenerator) GenerateLesson(ctx context.Context, topic, gradeLevel string) (*model.LessonContent, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	done := make(chan lessonResult, 1)
	go func() {
		l, err := t.next.GenerateLesson(ctx, topic, gradeLevel)
		done <- lessonResult{lesson: l, err: err}
	}()

	select {
	case r := <-done:
		return r.lesson, r.err
	case <-ctx.Done():
		return nil, contextFailure(OpLesson, ctx.Err())
	}
}

func (t *timeoutGenerator) GenerateCertificateText(ctx context.Context, studentName, achievement string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	done := make(chan textResult, 1)
	go func() {
		s, err := t.next.GenerateCertificateText(ctx, studentName, achievement)
		done <- textResult{text: s, err: err}
	}()

	select {
	case r := <-done:
		return r.text, r.err
	case <-ctx.Done():
		return "", contextFailure(OpCertificate, ctx.Err())
	}
}

// WithRetry re-attempts calls that failed as unavailable or malformed, up
// to attempts calls in total. Timeouts and cancellations are returned at once.
func WithRetry(g Generator, attempts int) Generator {
	if attempts <= 1 {
		return g
	}
	return &retryGenerator{next: g, attempts: attempts}
}

type retryGenerator struct {
	next     Generator
	attempts int
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	switch KindOf(err) {
	case KindUnavailable, KindMalformed:
		return true
	case KindTimeout, KindCanceled:
		return false
	}
	return false
}

func (r *retryGenerator) GenerateLesson(ctx context.Context, topic, gradeLevel string) (*model.LessonContent, error) {
	var (
		lesson *model.LessonContent
		err    error
	)
	for i := 0; i < r.attempts; i++ {
		lesson, err = r.next.GenerateLesson(ctx, topic, gradeLevel)
		if err == nil || !retryable(ctx, err) {
			break
		}
	}
	return lesson, err
}

func (r *retryGenerator) GenerateCertificateText(ctx context.Context, studentName, achievement string) (string, error) {
	var (
		text string
		err  error
	)
	for i := 0; i < r.attempts; i++ {
		text, err = r.next.GenerateCertificateText(ctx, studentName, achievement)
		if err == nil || !retryable(ctx, err) {
			break
		}
	}
	return text, err
}

// Instrumented logs every call and records it in m. A nil m disables metrics.
func Instrumented(g Generator, log zerolog.Logger, m *metrics.Metrics) Generator {
	return &instrumentedGenerator{
		next:    g,
		log:     log.With().Str("component", "generator").Logger(),
		metrics: m,
	}
}

type instrumentedGenerator struct {
	next    Generator
	log     zerolog.Logger
	metrics *metrics.Metrics
}

func (i *instrumentedGenerator) GenerateLesson(ctx context.Context, topic, gradeLevel string) (*model.LessonContent, error) {
	start := time.Now()
	lesson, err := i.next.GenerateLesson(ctx, topic, gradeLevel)
	i.observe(OpLesson, start, err, func(e *zerolog.Event) *zerolog.Event {
		return e.Str("topic", topic).Str("grade", gradeLevel)
	})
	return lesson, err
}

func (i *instrumentedGenerator) GenerateCertificateText(ctx context.Context, studentName, achievement string) (string, error) {
	start := time.Now()
	text, err := i.next.GenerateCertificateText(ctx, studentName, achievement)
	i.observe(OpCertificate, start, err, func(e *zerolog.Event) *zerolog.Event {
		return e.Str("achievement", achievement)
	})
	return text, err
}

func (i *instrumentedGenerator) observe(op string, start time.Time, err error, fields func(*zerolog.Event) *zerolog.Event) {
	elapsed := time.Since(start)
	outcome := "ok"
	if err != nil {
		outcome = string(KindOf(err))
		if outcome == "" {
			outcome = "error"
		}
	}

	if i.metrics != nil {
		i.metrics.ObserveGeneration(op, outcome, elapsed)
	}

	var ev *zerolog.Event
	if err != nil {
		ev = i.log.Warn().Err(err)
	} else {
		ev = i.log.Info()
	}
	fields(ev).
		Str("op", op).
		Str("outcome", outcome).
		Dur("elapsed", elapsed).
		Msg("Generation finished")
}
