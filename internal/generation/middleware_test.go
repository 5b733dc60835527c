package generation

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elimufine/elimu-backend/internal/metrics"
	"github.com/elimufine/elimu-backend/internal/model"
)

// stubGenerator fails the first failN calls with kind, then succeeds.
type stubGenerator struct {
	failN int32
	kind  FailureKind
	calls atomic.Int32
}

func (s *stubGenerator) GenerateLesson(ctx context.Context, topic, gradeLevel string) (*model.LessonContent, error) {
	if s.calls.Add(1) <= s.failN {
		return nil, &Failure{Op: OpLesson, Kind: s.kind, Err: errors.New("stub")}
	}
	return fixtureLesson("lesson-stub", topic, ""), nil
}

func (s *stubGenerator) GenerateCertificateText(ctx context.Context, studentName, achievement string) (string, error) {
	if s.calls.Add(1) <= s.failN {
		return "", &Failure{Op: OpCertificate, Kind: s.kind, Err: errors.New("stub")}
	}
	return studentName + " " + achievement, nil
}

func TestWithTimeoutExpires(t *testing.T) {
	g := WithTimeout(NewFixture(time.Minute, time.Minute, ""), 20*time.Millisecond)

	start := time.Now()
	lesson, err := g.GenerateLesson(context.Background(), "Soil", "5")
	assert.Nil(t, lesson)
	assert.True(t, IsKind(err, KindTimeout), "got %v", err)
	assert.Less(t, time.Since(start), time.Second)

	_, err = g.GenerateCertificateText(context.Background(), "Jane Doe", "Reading Star")
	assert.True(t, IsKind(err, KindTimeout))
}

func TestWithTimeoutIgnoringBackendStillBounded(t *testing.T) {
	g := WithTimeout(newGemini(&fakeModels{block: true}, "", ""), 20*time.Millisecond)
	_, err := g.GenerateLesson(context.Background(), "Soil", "5")
	assert.True(t, IsKind(err, KindTimeout))
}

func TestWithTimeoutPassesResult(t *testing.T) {
	g := WithTimeout(NewFixture(time.Millisecond, time.Millisecond, ""), time.Second)
	lesson, err := g.GenerateLesson(context.Background(), "Soil", "5")
	require.NoError(t, err)
	assert.Contains(t, lesson.Title, "Soil")
}

func TestWithTimeoutZeroIsPassthrough(t *testing.T) {
	f := NewFixture(0, 0, "")
	assert.Same(t, Generator(f), WithTimeout(f, 0))
}

func TestWithRetryIsBounded(t *testing.T) {
	stub := &stubGenerator{failN: 10, kind: KindMalformed}
	g := WithRetry(stub, 3)

	_, err := g.GenerateLesson(context.Background(), "Soil", "5")
	assert.True(t, IsKind(err, KindMalformed))
	assert.Equal(t, int32(3), stub.calls.Load())
}

func TestWithRetryRecovers(t *testing.T) {
	stub := &stubGenerator{failN: 1, kind: KindUnavailable}
	g := WithRetry(stub, 2)

	text, err := g.GenerateCertificateText(context.Background(), "Jane Doe", "Reading Star")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe Reading Star", text)
	assert.Equal(t, int32(2), stub.calls.Load())
}

func TestWithRetryDoesNotRetryTimeout(t *testing.T) {
	stub := &stubGenerator{failN: 10, kind: KindTimeout}
	g := WithRetry(stub, 5)

	_, err := g.GenerateLesson(context.Background(), "Soil", "5")
	assert.True(t, IsKind(err, KindTimeout))
	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestWithRetrySingleAttemptIsPassthrough(t *testing.T) {
	stub := &stubGenerator{}
	assert.Same(t, Generator(stub), WithRetry(stub, 1))
}

func TestInstrumentedRecordsOutcome(t *testing.T) {
	var buf bytes.Buffer
	m := metrics.New(prometheus.NewRegistry())
	g := Instrumented(&stubGenerator{failN: 1, kind: KindUnavailable}, zerolog.New(&buf), m)

	_, err := g.GenerateLesson(context.Background(), "Soil", "5")
	assert.Error(t, err)
	_, err = g.GenerateLesson(context.Background(), "Soil", "5")
	assert.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Generations.WithLabelValues(OpLesson, "unavailable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Generations.WithLabelValues(OpLesson, "ok")))
	assert.Contains(t, buf.String(), `"component":"generator"`)
	assert.Contains(t, buf.String(), `"topic":"Soil"`)
}

func TestInstrumentedWithoutMetrics(t *testing.T) {
	g := Instrumented(NewFixture(0, 0, ""), zerolog.Nop(), nil)
	text, err := g.GenerateCertificateText(context.Background(), "Jane Doe", "Reading Star")
	require.NoError(t, err)
	assert.Contains(t, text, "Reading Star")
}
