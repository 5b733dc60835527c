package generation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/elimufine/elimu-backend/internal/model"
)

// Response-size limits for generated lessons.
const (
	MaxTitleLen    = 200
	MaxStrandLen   = 120
	MaxContentLen  = 4000
	MaxQuestionLen = 500
	MaxOptionLen   = 200
	MinOptions     = 2
	MaxOptions     = 4
	LessonQuizSize = 2
	MCQOptionCount = 4
)

// ValidateQuizItem checks the invariants every quiz item must hold.
func ValidateQuizItem(q model.QuizItem) error {
	if strings.TrimSpace(q.Question) == "" {
		return errors.New("question is empty")
	}
	if utf8.RuneCountInString(q.Question) > MaxQuestionLen {
		return fmt.Errorf("question exceeds %d characters", MaxQuestionLen)
	}
	if !q.Kind.Valid() {
		return fmt.Errorf("unknown quiz type %q", q.Kind)
	}
	if len(q.Options) < MinOptions || len(q.Options) > MaxOptions {
		return fmt.Errorf("quiz item has %d options, want %d-%d", len(q.Options), MinOptions, MaxOptions)
	}
	seen := make(map[string]int, len(q.Options))
	for i, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			return fmt.Errorf("option %d is empty", i)
		}
		if utf8.RuneCountInString(o) > MaxOptionLen {
			return fmt.Errorf("option %d exceeds %d characters", i, MaxOptionLen)
		}
		key := strings.ToLower(strings.TrimSpace(o))
		if j, dup := seen[key]; dup {
			return fmt.Errorf("option %d duplicates option %d", i, j)
		}
		seen[key] = i
	}
	if q.Kind != model.QuizKindShortAnswer && !q.HasOption(q.CorrectAnswer) {
		return fmt.Errorf("correct answer %q is not one of the options", q.CorrectAnswer)
	}
	return nil
}

// ValidateLesson checks a generated lesson against the shape callers rely on:
// the title and content mention the topic, and the quiz is exactly one
// four-option multiple-choice item followed by one true/false item.
func ValidateLesson(l *model.LessonContent, topic string) error {
	if l == nil {
		return errors.New("lesson is nil")
	}
	if err := checkText("title", l.Title, MaxTitleLen); err != nil {
		return err
	}
	if err := checkText("strand", l.Strand, MaxStrandLen); err != nil {
		return err
	}
	if err := checkText("subStrand", l.SubStrand, MaxStrandLen); err != nil {
		return err
	}
	if err := checkText("content", l.Content, MaxContentLen); err != nil {
		return err
	}
	if !containsFold(l.Title, topic) {
		return fmt.Errorf("title %q does not mention topic %q", l.Title, topic)
	}
	if !containsFold(l.Content, topic) {
		return fmt.Errorf("content does not mention topic %q", topic)
	}

	if len(l.Quiz) != LessonQuizSize {
		return fmt.Errorf("quiz has %d items, want %d", len(l.Quiz), LessonQuizSize)
	}
	for i, q := range l.Quiz {
		if err := ValidateQuizItem(q); err != nil {
			return fmt.Errorf("quiz[%d]: %w", i, err)
		}
	}

	mcq, tf := l.Quiz[0], l.Quiz[1]
	if mcq.Kind != model.QuizKindMultipleChoice {
		return fmt.Errorf("quiz[0] is %q, want %q", mcq.Kind, model.QuizKindMultipleChoice)
	}
	if len(mcq.Options) != MCQOptionCount {
		return fmt.Errorf("quiz[0] has %d options, want %d", len(mcq.Options), MCQOptionCount)
	}
	if tf.Kind != model.QuizKindTrueFalse {
		return fmt.Errorf("quiz[1] is %q, want %q", tf.Kind, model.QuizKindTrueFalse)
	}
	if len(tf.Options) != 2 || tf.Options[0] != model.TrueFalseOptions[0] || tf.Options[1] != model.TrueFalseOptions[1] {
		return fmt.Errorf("quiz[1] options are %q, want %q", tf.Options, model.TrueFalseOptions)
	}
	return nil
}

// ValidateCertificate checks that text carries the name and achievement verbatim.
func ValidateCertificate(text, studentName, achievement string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("certificate text is empty")
	}
	if !strings.Contains(text, studentName) {
		return fmt.Errorf("certificate text does not contain name %q", studentName)
	}
	if !strings.Contains(text, achievement) {
		return fmt.Errorf("certificate text does not contain achievement %q", achievement)
	}
	return nil
}

// normalizeQuizOrder puts the multiple-choice item first when a backend
// returns the two items swapped.
func normalizeQuizOrder(quiz []model.QuizItem) {
	if len(quiz) == 2 && quiz[0].Kind == model.QuizKindTrueFalse && quiz[1].Kind == model.QuizKindMultipleChoice {
		quiz[0], quiz[1] = quiz[1], quiz[0]
	}
}

func checkText(field, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is empty", field)
	}
	if utf8.RuneCountInString(value) > max {
		return fmt.Errorf("%s exceeds %d characters", field, max)
	}
	return nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}
