package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/elimufine/elimu-backend/internal/i18n"
	"github.com/elimufine/elimu-backend/internal/model"
	"github.com/elimufine/elimu-backend/internal/repository"
)

// DashboardService assembles the per-role dashboards.
type DashboardService struct {
	repo    *repository.DashboardRepository
	catalog *i18n.Catalog
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(repo *repository.DashboardRepository, catalog *i18n.Catalog) *DashboardService {
	return &DashboardService{repo: repo, catalog: catalog}
}

// GetDashboard builds the dashboard for role in lang.
func (s *DashboardService) GetDashboard(ctx context.Context, role model.UserRole, lang i18n.Language) (*model.Dashboard, error) {
	switch role {
	case model.RoleStudent:
		return s.studentDashboard(ctx, lang)
	case model.RoleTeacher:
		return s.teacherDashboard(ctx, lang, "")
	case model.RoleSchool:
		return s.schoolDashboard(ctx, lang)
	case model.RoleParent:
		return s.parentDashboard(ctx, lang)
	}
	return nil, fmt.Errorf("no dashboard for role %q", role)
}

// SearchResources filters the teacher hub resources by title, subject or
// grade. The match is a case-insensitive substring; a blank query matches all.
func (s *DashboardService) SearchResources(ctx context.Context, query string) ([]model.SharedResource, error) {
	all, err := s.repo.GetSharedResources(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}

	out := make([]model.SharedResource, 0, len(all))
	for _, r := range all {
		if strings.Contains(strings.ToLower(r.Title), q) ||
			strings.Contains(strings.ToLower(r.Subject), q) ||
			strings.Contains(strings.ToLower(r.Grade), q) {
			out = append(out, r)
		}
	}
	return out, nil
}

// TeacherDashboard is the teacher dashboard with its resource list filtered by query.
func (s *DashboardService) TeacherDashboard(ctx context.Context, lang i18n.Language, query string) (*model.Dashboard, error) {
	return s.teacherDashboard(ctx, lang, query)
}

func (s *DashboardService) studentDashboard(ctx context.Context, lang i18n.Language) (*model.Dashboard, error) {
	lessons, err := s.repo.GetStudentLessons(ctx)
	if err != nil {
		return nil, fmt.Errorf("get lessons: %w", err)
	}
	projects, err := s.repo.GetStudentProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("get projects: %w", err)
	}
	competitions, err := s.repo.GetCompetitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("get competitions: %w", err)
	}

	return &model.Dashboard{
		Role:       model.RoleStudent,
		Title:      s.catalog.T(lang, "studentDashboard"),
		DefaultTab: "lessons",
		Tabs: []model.DashboardTab{
			s.tab(lang, "lessons", "tabLessons", "fa-book-open"),
			s.tab(lang, "projects", "tabProjects", "fa-lightbulb"),
			s.tab(lang, "competitions", "tabCompetitions", "fa-trophy"),
		},
		Lessons:      lessons,
		Projects:     projects,
		Competitions: competitions,
	}, nil
}

func (s *DashboardService) teacherDashboard(ctx context.Context, lang i18n.Language, query string) (*model.Dashboard, error) {
	resources, err := s.SearchResources(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search resources: %w", err)
	}
	posts, err := s.repo.GetForumPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("get forum posts: %w", err)
	}

	return &model.Dashboard{
		Role:       model.RoleTeacher,
		Title:      s.catalog.T(lang, "teacherDashboard"),
		DefaultTab: "hub",
		Tabs: []model.DashboardTab{
			s.tab(lang, "builder", "tabBuilder", "fa-flask-vial"),
			s.tab(lang, "hub", "tabHub", "fa-users"),
			s.tab(lang, "toolkit", "tabToolkit", "fa-clipboard-check"),
		},
		SharedResources: resources,
		ForumPosts:      posts,
	}, nil
}

func (s *DashboardService) schoolDashboard(ctx context.Context, lang i18n.Language) (*model.Dashboard, error) {
	metrics, err := s.repo.GetSubjectMetrics(ctx)
	if err != nil {
		return nil, fmt.Errorf("get metrics: %w", err)
	}
	competitions, err := s.repo.GetCompetitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("get competitions: %w", err)
	}

	return &model.Dashboard{
		Role:       model.RoleSchool,
		Title:      s.catalog.T(lang, "schoolDashboard"),
		DefaultTab: "analytics",
		Tabs: []model.DashboardTab{
			s.tab(lang, "analytics", "tabAnalytics", "fa-chart-line"),
			s.tab(lang, "competitions", "tabCompetitions", "fa-trophy"),
			s.tab(lang, "certificates", "tabCertificates", "fa-award"),
		},
		Metrics:      metrics,
		Competitions: competitions,
	}, nil
}

func (s *DashboardService) parentDashboard(ctx context.Context, lang i18n.Language) (*model.Dashboard, error) {
	progress, err := s.repo.GetWeeklyProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	projects, err := s.repo.GetChildProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("get projects: %w", err)
	}

	return &model.Dashboard{
		Role:     model.RoleParent,
		Title:    s.catalog.T(lang, "parentDashboard"),
		Progress: progress,
		Projects: projects,
	}, nil
}

func (s *DashboardService) tab(lang i18n.Language, key, labelKey, icon string) model.DashboardTab {
	return model.DashboardTab{Key: key, Label: s.catalog.T(lang, labelKey), Icon: icon}
}
