package service

import (
	"github.com/elimufine/elimu-backend/internal/i18n"
	"github.com/elimufine/elimu-backend/internal/model"
)

// RoleCard is one selectable role on the role-selection screen.
type RoleCard struct {
	Role        model.UserRole `json:"role"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
}

// RoleSelection is the landing screen shown before a role is chosen.
type RoleSelection struct {
	Language  i18n.Language   `json:"language"`
	Languages []i18n.Language `json:"languages"`
	Welcome   string          `json:"welcome"`
	Tagline   string          `json:"tagline"`
	Roles     []RoleCard      `json:"roles"`
}

// ShellService renders the localized application shell.
type ShellService struct {
	catalog *i18n.Catalog
}

func NewShellService(catalog *i18n.Catalog) *ShellService {
	return &ShellService{catalog: catalog}
}

func (s *ShellService) RoleSelection(lang i18n.Language) *RoleSelection {
	cards := make([]RoleCard, 0, len(model.AllRoles))
	for _, r := range model.AllRoles {
		key := r.LexiconKey()
		cards = append(cards, RoleCard{
			Role:        r,
			Title:       s.catalog.T(lang, key),
			Description: s.catalog.T(lang, key+"Desc"),
			Icon:        r.Icon(),
		})
	}

	return &RoleSelection{
		Language:  lang,
		Languages: s.catalog.Languages(),
		Welcome:   s.catalog.T(lang, "welcome"),
		Tagline:   s.catalog.T(lang, "tagline"),
		Roles:     cards,
	}
}

// Lexicon returns every display string for lang.
func (s *ShellService) Lexicon(lang i18n.Language) map[string]string {
	return s.catalog.Lexicon(lang)
}

// ParseLanguage validates a lexicon code.
func (s *ShellService) ParseLanguage(code string) (i18n.Language, error) {
	return s.catalog.ParseLanguage(code)
}
