package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elimufine/elimu-backend/internal/generation"
	"github.com/elimufine/elimu-backend/internal/model"
	"github.com/elimufine/elimu-backend/internal/service"
)

func testService() *service.GenerationService {
	return service.NewGenerationService(generation.NewFixture(0, 0, ""), zerolog.Nop())
}

func nonInteractive() prompter {
	return prompter{reader: bufio.NewReader(strings.NewReader("")), out: io.Discard}
}

func TestRunLesson(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"lesson", "-topic", "Photosynthesis", "-grade", "4"}, testService(), nonInteractive(), &out, zerolog.Nop())
	require.NoError(t, err)

	var lesson model.LessonContent
	require.NoError(t, json.Unmarshal(out.Bytes(), &lesson))
	assert.Contains(t, lesson.Title, "Photosynthesis")
	assert.Len(t, lesson.Quiz, 2)
}

func TestRunCertificatePrompts(t *testing.T) {
	var prompts, out bytes.Buffer
	in := prompter{
		reader:      bufio.NewReader(strings.NewReader("Jane Doe\nScience Fair\n")),
		out:         &prompts,
		interactive: true,
	}

	err := run(context.Background(), []string{"certificate"}, testService(), in, &out, zerolog.Nop())
	require.NoError(t, err)

	assert.Contains(t, prompts.String(), "Enter Student Name: ")
	var body map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &body))
	assert.Contains(t, body["certificate_text"], "Jane Doe")
	assert.Contains(t, body["certificate_text"], "Science Fair")
}

func TestRunMissingInputNonInteractive(t *testing.T) {
	err := run(context.Background(), []string{"lesson", "-grade", "4"}, testService(), nonInteractive(), io.Discard, zerolog.Nop())

	var ve *generation.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "topic")
}

func TestRunUsage(t *testing.T) {
	assert.Error(t, run(context.Background(), nil, testService(), nonInteractive(), io.Discard, zerolog.Nop()))
	assert.ErrorContains(t, run(context.Background(), []string{"quiz"}, testService(), nonInteractive(), io.Discard, zerolog.Nop()), "unknown command")
}
