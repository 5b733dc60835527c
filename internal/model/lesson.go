package model

// QuizKind identifies how a quiz item is answered.
type QuizKind string

const (
	QuizKindMultipleChoice QuizKind = "mcq"
	QuizKindTrueFalse      QuizKind = "true_false"
	QuizKindShortAnswer    QuizKind = "short_answer"
)

// Valid reports whether k is one of the known quiz kinds.
func (k QuizKind) Valid() bool {
	switch k {
	case QuizKindMultipleChoice, QuizKindTrueFalse, QuizKindShortAnswer:
		return true
	}
	return false
}

// TrueFalseOptions are the only options a true/false item may carry.
var TrueFalseOptions = []string{"True", "False"}

// QuizItem is a single question attached to a lesson.
type QuizItem struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Kind          QuizKind `json:"type"`
}

// HasOption reports whether s is exactly one of the item's options.
func (q QuizItem) HasOption(s string) bool {
	for _, o := range q.Options {
		if o == s {
			return true
		}
	}
	return false
}

// LessonContent is a generated, display-ready lesson. Values are produced
// fresh per generation call and never mutated afterwards.
type LessonContent struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Strand             string     `json:"strand"`
	SubStrand          string     `json:"subStrand"`
	Content            string     `json:"content"`
	VisualAidReference string     `json:"visualAidUrl,omitempty"`
	Quiz               []QuizItem `json:"quiz"`
}

// GenerateLessonRequest is the payload for lesson generation.
type GenerateLessonRequest struct {
	Topic      string `json:"topic" binding:"required,notblank,max=200"`
	GradeLevel string `json:"grade_level" binding:"required,oneof=1 2 3 4 5 6 7 8"`
}

// GenerateCertificateRequest is the payload for certificate wording.
type GenerateCertificateRequest struct {
	StudentName string `json:"student_name" binding:"required,notblank,max=120"`
	Achievement string `json:"achievement" binding:"required,notblank,max=200"`
}

// MinGrade and MaxGrade bound the grade levels lessons are generated for.
const (
	MinGrade = 1
	MaxGrade = 8
)

// GradeLevels is the accepted spelling of every grade, matching the
// oneof rule on GenerateLessonRequest.
var GradeLevels = []string{"1", "2", "3", "4", "5", "6", "7", "8"}

// ValidGradeLevel reports whether s is exactly one of GradeLevels.
// "04" and "+4" are rejected.
func ValidGradeLevel(s string) bool {
	for _, g := range GradeLevels {
		if g == s {
			return true
		}
	}
	return false
}
