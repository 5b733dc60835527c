package generation

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/elimufine/elimu-backend/internal/model"
)

type fakeModels struct {
	text    string
	err     error
	calls   atomic.Int32
	lastCfg *genai.GenerateContentConfig
	block   bool
}

func (f *fakeModels) GenerateContent(ctx context.Context, modelName string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls.Add(1)
	f.lastCfg = cfg
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: f.text}}},
		}},
	}, nil
}

const photosynthesisJSON = `{
  "title": "Photosynthesis: How Plants Make Food",
  "strand": "Science and Technology",
  "subStrand": "Plants",
  "content": "Photosynthesis is the process green plants use to make food from sunlight, water and carbon dioxide.",
  "quiz": [
    {"question": "What do plants need for photosynthesis?", "options": ["Sunlight", "Sand", "Salt", "Plastic"], "correctAnswer": "Sunlight", "type": "mcq"},
    {"question": "True or False: Photosynthesis happens in the roots.", "options": ["True", "False"], "correctAnswer": "False", "type": "true_false"}
  ]
}`

func TestGeminiLesson(t *testing.T) {
	fake := &fakeModels{text: "```json\n" + photosynthesisJSON + "\n```"}
	g := newGemini(fake, "", "https://example.test/aid.png")

	lesson, err := g.GenerateLesson(context.Background(), "Photosynthesis", "4")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(lesson.ID, "lesson-"))
	assert.Equal(t, "https://example.test/aid.png", lesson.VisualAidReference)
	assert.Equal(t, model.QuizKindMultipleChoice, lesson.Quiz[0].Kind)
	assert.Equal(t, "application/json", fake.lastCfg.ResponseMIMEType)
	assert.Same(t, lessonSchema, fake.lastCfg.ResponseSchema)
	assert.Equal(t, DefaultGeminiModel, g.model)
}

func TestGeminiLessonSwappedQuizIsNormalized(t *testing.T) {
	swapped := strings.Replace(photosynthesisJSON,
		`{"question": "What do plants need for photosynthesis?", "options": ["Sunlight", "Sand", "Salt", "Plastic"], "correctAnswer": "Sunlight", "type": "mcq"},
    {"question": "True or False: Photosynthesis happens in the roots.", "options": ["True", "False"], "correctAnswer": "False", "type": "true_false"}`,
		`{"question": "True or False: Photosynthesis happens in the roots.", "options": ["True", "False"], "correctAnswer": "False", "type": "true_false"},
    {"question": "What do plants need for photosynthesis?", "options": ["Sunlight", "Sand", "Salt", "Plastic"], "correctAnswer": "Sunlight", "type": "mcq"}`, 1)
	g := newGemini(&fakeModels{text: swapped}, "", "")

	lesson, err := g.GenerateLesson(context.Background(), "Photosynthesis", "4")
	require.NoError(t, err)
	assert.Equal(t, model.QuizKindMultipleChoice, lesson.Quiz[0].Kind)
	assert.Equal(t, model.QuizKindTrueFalse, lesson.Quiz[1].Kind)
}

func TestGeminiLessonMalformed(t *testing.T) {
	tests := map[string]string{
		"not json":          "Here is your lesson!",
		"answer not listed": strings.Replace(photosynthesisJSON, `"correctAnswer": "Sunlight"`, `"correctAnswer": "Moonlight"`, 1),
		"missing topic":     strings.ReplaceAll(photosynthesisJSON, "Photosynthesis", "Respiration"),
		"empty":             "   ",
		"duplicate options": strings.Replace(photosynthesisJSON, `["Sunlight", "Sand", "Salt", "Plastic"]`, `["Sunlight", "Sunlight", "Sunlight", "Sunlight"]`, 1),
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			g := newGemini(&fakeModels{text: text}, "", "")
			lesson, err := g.GenerateLesson(context.Background(), "Photosynthesis", "4")
			assert.Nil(t, lesson)
			assert.True(t, IsKind(err, KindMalformed), "got %v", err)
		})
	}
}

func TestGeminiOversizedResponse(t *testing.T) {
	g := newGemini(&fakeModels{text: strings.Repeat("a", maxResponseBytes+1)}, "", "")
	_, err := g.GenerateCertificateText(context.Background(), "Jane Doe", "Science Fair Winner 2024")
	assert.True(t, IsKind(err, KindMalformed))
}

func TestGeminiUnavailable(t *testing.T) {
	g := newGemini(&fakeModels{err: errors.New("503 service unavailable")}, "gemini-test", "")

	_, err := g.GenerateLesson(context.Background(), "Photosynthesis", "4")
	assert.True(t, IsKind(err, KindUnavailable))

	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, OpLesson, f.Op)
}

func TestGeminiCertificate(t *testing.T) {
	fake := &fakeModels{text: "Congratulations to Jane Doe, Science Fair Winner 2024, for brilliant work."}
	g := newGemini(fake, "", "")

	text, err := g.GenerateCertificateText(context.Background(), "Jane Doe", "Science Fair Winner 2024")
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Equal(t, "text/plain", fake.lastCfg.ResponseMIMEType)
}

func TestGeminiCertificateMissingName(t *testing.T) {
	g := newGemini(&fakeModels{text: "Congratulations on winning the science fair!"}, "", "")
	_, err := g.GenerateCertificateText(context.Background(), "Jane Doe", "Science Fair Winner 2024")
	assert.True(t, IsKind(err, KindMalformed))
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "", "")
	assert.Error(t, err)
}

func TestCleanModelOutput(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanModelOutput("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanModelOutput("```JSON{\"a\":1}```"))
	assert.Equal(t, "plain", cleanModelOutput("  plain \n"))
}
