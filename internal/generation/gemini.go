package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/elimufine/elimu-backend/internal/model"
)

// DefaultGeminiModel is used when no model name is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// maxResponseBytes caps the raw text accepted from the model.
const maxResponseBytes = 64 << 10

// contentModel is the subset of the genai client the adapter calls.
// *genai.Models satisfies it.
type contentModel interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini is the network-backed Generator using Gemini structured output.
type Gemini struct {
	models       contentModel
	model        string
	visualAidURL string
	newID        func() string
}

// NewGemini creates a Gemini client authenticated with apiKey.
func NewGemini(ctx context.Context, apiKey, modelName, visualAidURL string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newGemini(client.Models, modelName, visualAidURL), nil
}

func newGemini(models contentModel, modelName, visualAidURL string) *Gemini {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &Gemini{
		models:       models,
		model:        modelName,
		visualAidURL: visualAidURL,
		newID:        newLessonID,
	}
}

// lessonSchema is the structured-output contract requested from the model.
var lessonSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":     {Type: genai.TypeString, Description: "Lesson title that includes the topic"},
		"strand":    {Type: genai.TypeString, Description: "CBC strand"},
		"subStrand": {Type: genai.TypeString, Description: "CBC sub-strand"},
		"content":   {Type: genai.TypeString, Description: "About 100 words explaining the topic"},
		"quiz": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"question":      {Type: genai.TypeString},
					"options":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					"correctAnswer": {Type: genai.TypeString},
					"type": {
						Type: genai.TypeString,
						Enum: []string{
							string(model.QuizKindMultipleChoice),
							string(model.QuizKindTrueFalse),
							string(model.QuizKindShortAnswer),
						},
					},
				},
				Required:         []string{"question", "options", "correctAnswer", "type"},
				PropertyOrdering: []string{"question", "options", "correctAnswer", "type"},
			},
		},
	},
	Required:         []string{"title", "strand", "subStrand", "content", "quiz"},
	PropertyOrdering: []string{"title", "strand", "subStrand", "content", "quiz"},
}

// lessonPayload mirrors lessonSchema on the wire.
type lessonPayload struct {
	Title     string `json:"title"`
	Strand    string `json:"strand"`
	SubStrand string `json:"subStrand"`
	Content   string `json:"content"`
	Quiz      []struct {
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correctAnswer"`
		Type          string   `json:"type"`
	} `json:"quiz"`
}

func (g *Gemini) GenerateLesson(ctx context.Context, topic, gradeLevel string) (*model.LessonContent, error) {
	prompt := fmt.Sprintf(
		"Generate a CBC-aligned lesson for a Grade %s student in Kenya on the topic %q. "+
			"The lesson should include a title that contains the topic, a strand, a sub-strand, "+
			"a short content paragraph (around 100 words) that mentions the topic, and a 2-question quiz: "+
			"first one multiple choice question with exactly four options, then one true/false question "+
			"with the options \"True\" and \"False\". The correctAnswer must be copied exactly from the options.",
		gradeLevel, topic,
	)

	text, err := g.generate(ctx, OpLesson, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   lessonSchema,
	})
	if err != nil {
		return nil, err
	}

	lesson, err := decodeLesson(text)
	if err != nil {
		return nil, malformed(OpLesson, "decode lesson: %v", err)
	}
	normalizeQuizOrder(lesson.Quiz)
	if err := ValidateLesson(lesson, topic); err != nil {
		return nil, malformed(OpLesson, "%v", err)
	}

	lesson.ID = g.newID()
	lesson.VisualAidReference = g.visualAidURL
	return lesson, nil
}

func (g *Gemini) GenerateCertificateText(ctx context.Context, studentName, achievement string) (string, error) {
	prompt := fmt.Sprintf(
		"Write one short congratulatory paragraph for a school certificate awarded to %s for %q. "+
			"Use the name %q and the achievement %q exactly as written. Return only the paragraph.",
		studentName, achievement, studentName, achievement,
	)

	text, err := g.generate(ctx, OpCertificate, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "text/plain",
	})
	if err != nil {
		return "", err
	}
	if err := ValidateCertificate(text, studentName, achievement); err != nil {
		return "", malformed(OpCertificate, "%v", err)
	}
	return text, nil
}

func (g *Gemini) generate(ctx context.Context, op, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", contextFailure(op, ctxErr)
		}
		return "", &Failure{Op: op, Kind: KindUnavailable, Err: err}
	}
	if resp == nil {
		return "", malformed(op, "empty response")
	}

	text := cleanModelOutput(resp.Text())
	if text == "" {
		return "", malformed(op, "response has no text")
	}
	if len(text) > maxResponseBytes {
		return "", malformed(op, "response is %d bytes, limit %d", len(text), maxResponseBytes)
	}
	return text, nil
}

func decodeLesson(text string) (*model.LessonContent, error) {
	var p lessonPayload
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}

	lesson := &model.LessonContent{
		Title:     strings.TrimSpace(p.Title),
		Strand:    strings.TrimSpace(p.Strand),
		SubStrand: strings.TrimSpace(p.SubStrand),
		Content:   strings.TrimSpace(p.Content),
		Quiz:      make([]model.QuizItem, 0, len(p.Quiz)),
	}
	for _, q := range p.Quiz {
		lesson.Quiz = append(lesson.Quiz, model.QuizItem{
			Question:      strings.TrimSpace(q.Question),
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Kind:          model.QuizKind(q.Type),
		})
	}
	return lesson, nil
}

// cleanModelOutput strips markdown code fences some models wrap JSON in.
func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

func newLessonID() string {
	return "lesson-" + uuid.NewString()
}
