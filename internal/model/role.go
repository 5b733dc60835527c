package model

import "fmt"

// UserRole selects which dashboard the shell renders.
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
	RoleSchool  UserRole = "school"
	RoleParent  UserRole = "parent"
)

// AllRoles lists every role in role-selection order.
var AllRoles = []UserRole{RoleStudent, RoleTeacher, RoleSchool, RoleParent}

// ParseRole converts a path or header value into a UserRole.
func ParseRole(s string) (UserRole, error) {
	r := UserRole(s)
	switch r {
	case RoleStudent, RoleTeacher, RoleSchool, RoleParent:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// LexiconKey is the lexicon entry holding the role's display title.
// The description lives under the same key with a "Desc" suffix.
func (r UserRole) LexiconKey() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleTeacher:
		return "teacher"
	case RoleSchool:
		return "school"
	case RoleParent:
		return "parent"
	}
	panic(fmt.Sprintf("unhandled role %q", string(r)))
}

// Icon is the font-awesome icon shown on the role card.
func (r UserRole) Icon() string {
	switch r {
	case RoleStudent:
		return "fa-user-graduate"
	case RoleTeacher:
		return "fa-chalkboard-user"
	case RoleSchool:
		return "fa-school"
	case RoleParent:
		return "fa-users"
	}
	panic(fmt.Sprintf("unhandled role %q", string(r)))
}
