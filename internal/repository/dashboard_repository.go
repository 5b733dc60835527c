package repository

import (
	"context"

	"github.com/elimufine/elimu-backend/internal/model"
)

// DashboardRepository serves the static dashboard catalog. Every getter
// returns a fresh copy so callers may modify what they receive.
type DashboardRepository struct{}

func NewDashboardRepository() *DashboardRepository {
	return &DashboardRepository{}
}

func (r *DashboardRepository) GetStudentLessons(ctx context.Context) ([]model.LessonContent, error) {
	return []model.LessonContent{
		{
			ID: "l1", Title: "Classification of Living Things", Strand: "Science", SubStrand: "Biology",
			Content:            "Learn how to classify animals and plants based on their characteristics.",
			VisualAidReference: "https://picsum.photos/seed/science/600/400",
			Quiz:               []model.QuizItem{},
		},
		{
			ID: "l2", Title: "Solving Simple Equations", Strand: "Mathematics", SubStrand: "Algebra",
			Content:            "An introduction to basic algebra and how to solve for unknown variables.",
			VisualAidReference: "https://picsum.photos/seed/math/600/400",
			Quiz:               []model.QuizItem{},
		},
	}, nil
}

func (r *DashboardRepository) GetStudentProjects(ctx context.Context) ([]model.Project, error) {
	return []model.Project{
		{
			ID: "p1", Title: "Build a Water Filter",
			Description:    "Use local materials to build a functional water filter.",
			StudentName:    "Student User",
			SubmissionType: model.SubmissionImage,
			SubmissionURL:  "https://picsum.photos/seed/filter/400/300",
			Grade:          "Exceeds Expectations",
		},
	}, nil
}

// GetChildProjects returns the project showcase shown to parents, with teacher feedback.
func (r *DashboardRepository) GetChildProjects(ctx context.Context) ([]model.Project, error) {
	return []model.Project{
		{
			ID: "p1", Title: "Build a Water Filter",
			Description:    "Used local materials to build a functional water filter.",
			StudentName:    "Your Child",
			SubmissionType: model.SubmissionImage,
			SubmissionURL:  "https://picsum.photos/seed/filter/400/300",
			Grade:          "Exceeds Expectations",
			Feedback:       "Excellent work! The use of charcoal and sand layers was very effective. A well-documented process.",
		},
		{
			ID: "p2", Title: "My Family Tree",
			Description:    "Researched and drew our family lineage.",
			StudentName:    "Your Child",
			SubmissionType: model.SubmissionImage,
			SubmissionURL:  "https://picsum.photos/seed/family/400/300",
			Grade:          "Meets Expectations",
			Feedback:       "A beautiful and creative representation of your family history.",
		},
	}, nil
}

func (r *DashboardRepository) GetCompetitions(ctx context.Context) ([]model.Competition, error) {
	return []model.Competition{
		{
			ID: "c1", Title: "National Science Quiz Bowl",
			Description:  "Test your knowledge against students from across the county.",
			Type:         model.CompetitionQuiz,
			Participants: 150,
			Leaderboard: []model.LeaderboardEntry{
				{Name: "Nairobi School", Score: 95},
				{Name: "Alliance High", Score: 92},
				{Name: "Your School", Score: 88},
			},
		},
	}, nil
}

func (r *DashboardRepository) GetForumPosts(ctx context.Context) ([]model.ForumPost, error) {
	return []model.ForumPost{
		{
			ID: "p1", Author: "Jane Doe", Role: model.RoleTeacher,
			Title:   "How do I teach fractions without textbooks?",
			Content: "My school has very limited resources, and I'm struggling to find engaging ways to teach fractions to my Grade 4 class. Any practical ideas?",
			Replies: []model.ForumReply{
				{Author: "John Smith", Content: "You can use everyday objects like fruits or a loaf of bread! Dividing them physically helps students grasp the concept."},
			},
		},
		{
			ID: "p2", Author: "Peter Jones", Role: model.RoleTeacher,
			Title:   "Managing large class sizes during projects",
			Content: "With over 60 students, group projects often become chaotic. What are some effective strategies for managing large classes during collaborative work?",
			Replies: []model.ForumReply{
				{Author: "Mary Ann", Content: "Assign clear roles to each group member (e.g., leader, scribe, presenter). It creates structure and accountability."},
			},
		},
	}, nil
}

func (r *DashboardRepository) GetSharedResources(ctx context.Context) ([]model.SharedResource, error) {
	return []model.SharedResource{
		{ID: "res1", Title: "Grade 6 Science - Water Cycle Worksheet", Uploader: "Mary Ann", Type: model.ResourceWorksheet, Subject: "Science", Grade: "6"},
		{ID: "res2", Title: "Junior Sec. History Lesson Plan - The Scramble for Africa", Uploader: "John Smith", Type: model.ResourceLessonPlan, Subject: "History", Grade: "8"},
		{ID: "res3", Title: "Grade 4 Math Assessment - Fractions", Uploader: "Peter Jones", Type: model.ResourceAssessment, Subject: "Mathematics", Grade: "4"},
	}, nil
}

func (r *DashboardRepository) GetSubjectMetrics(ctx context.Context) ([]model.SubjectMetric, error) {
	return []model.SubjectMetric{
		{Name: "Science", Mastery: 85, Attendance: 95},
		{Name: "Math", Mastery: 72, Attendance: 92},
		{Name: "English", Mastery: 88, Attendance: 98},
		{Name: "Kiswahili", Mastery: 91, Attendance: 96},
		{Name: "CRE", Mastery: 78, Attendance: 91},
	}, nil
}

func (r *DashboardRepository) GetWeeklyProgress(ctx context.Context) (*model.ProgressSummary, error) {
	return &model.ProgressSummary{
		LessonsCompleted: 3,
		Subject:          "Science",
		AverageScore:     88,
		SMSOptIn:         false,
	}, nil
}
