package model

// SubmissionType is the media kind of a project submission.
type SubmissionType string

const (
	SubmissionImage SubmissionType = "image"
	SubmissionText  SubmissionType = "text"
	SubmissionAudio SubmissionType = "audio"
)

// Project is a student project or portfolio entry.
type Project struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	StudentName    string         `json:"studentName"`
	SubmissionURL  string         `json:"submissionUrl,omitempty"`
	SubmissionType SubmissionType `json:"submissionType"`
	Grade          string         `json:"grade,omitempty"`
	Feedback       string         `json:"feedback,omitempty"`
}

// ForumReply is a reply under a forum post.
type ForumReply struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

// ForumPost is a teacher hub community thread.
type ForumPost struct {
	ID      string       `json:"id"`
	Author  string       `json:"author"`
	Role    UserRole     `json:"role"`
	Title   string       `json:"title"`
	Content string       `json:"content"`
	Replies []ForumReply `json:"replies"`
}

// CompetitionType distinguishes quiz competitions from project fairs.
type CompetitionType string

const (
	CompetitionQuiz    CompetitionType = "quiz"
	CompetitionProject CompetitionType = "project"
)

// LeaderboardEntry is one ranked row of a competition leaderboard.
type LeaderboardEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Competition is a school competition with its leaderboard.
type Competition struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Type         CompetitionType    `json:"type"`
	Participants int                `json:"participants"`
	Leaderboard  []LeaderboardEntry `json:"leaderboard"`
}

// ResourceType categorizes a shared teaching resource.
type ResourceType string

const (
	ResourceLessonPlan      ResourceType = "Lesson Plan"
	ResourceWorksheet       ResourceType = "Worksheet"
	ResourceTextbookChapter ResourceType = "Textbook Chapter"
	ResourceAssessment      ResourceType = "Assessment"
)

// SharedResource is a downloadable resource in the teacher hub.
type SharedResource struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Uploader string       `json:"uploader"`
	Type     ResourceType `json:"type"`
	Subject  string       `json:"subject"`
	Grade    string       `json:"grade"`
}

// SubjectMetric holds per-subject mastery and attendance percentages.
type SubjectMetric struct {
	Name       string `json:"name"`
	Mastery    int    `json:"mastery"`
	Attendance int    `json:"attendance"`
}

// ProgressSummary is the weekly summary shown to parents.
type ProgressSummary struct {
	LessonsCompleted int    `json:"lessonsCompleted"`
	Subject          string `json:"subject"`
	AverageScore     int    `json:"averageScore"`
	SMSOptIn         bool   `json:"smsOptIn"`
}

// DashboardTab is a tab in a role dashboard.
type DashboardTab struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// Dashboard is the payload rendered for a role. Only the sections relevant
// to the role are populated.
type Dashboard struct {
	Role            UserRole         `json:"role"`
	Title           string           `json:"title"`
	DefaultTab      string           `json:"defaultTab,omitempty"`
	Tabs            []DashboardTab   `json:"tabs,omitempty"`
	Lessons         []LessonContent  `json:"lessons,omitempty"`
	Projects        []Project        `json:"projects,omitempty"`
	Competitions    []Competition    `json:"competitions,omitempty"`
	ForumPosts      []ForumPost      `json:"forumPosts,omitempty"`
	SharedResources []SharedResource `json:"sharedResources,omitempty"`
	Metrics         []SubjectMetric  `json:"metrics,omitempty"`
	Progress        *ProgressSummary `json:"progress,omitempty"`
}
