package user

import (
	"fmt"
	"strings"

	"github.com/Vane487/kursovarobota/core"
)

// recordFields is the number of columns in a users file line: username:password:roleLabel
const recordFields = 3

type Role string

// Roles
const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

var (
	Roles = []Role{RoleStudent, RoleTeacher, RoleAdmin}

	rolePriorities = map[Role]int{
		RoleAdmin:   30,
		RoleTeacher: 20,
		RoleStudent: 10,
	}

	// labels written to the users file
	roleLabels = map[Role]string{
		RoleAdmin:   "Адміністратор",
		RoleTeacher: "Викладач",
		RoleStudent: "Студент",
	}

	roleNames = map[Role]string{
		RoleAdmin:   "Admin",
		RoleTeacher: "Teacher",
		RoleStudent: "Student",
	}

	// extra spellings accepted when reading
	roleAliases = map[string]Role{
		"administrator": RoleAdmin,
	}
)

func RolePriority(role Role) int {
	return rolePriorities[role]
}

// AtLeast reports whether r grants everything o does.
func (r Role) AtLeast(o Role) bool {
	return r.Valid() && RolePriority(r) >= RolePriority(o)
}

func (r Role) Valid() bool {
	_, ok := rolePriorities[r]
	return ok
}

func (r Role) Label() string {
	return roleLabels[r]
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return string(r)
}

// ParseRole accepts the stored label, the English name in any case, or "administrator".
func ParseRole(s string) (Role, error) {
	s = core.CleanString(s)
	for role, label := range roleLabels {
		if s == label {
			return role, nil
		}
	}
	ls := strings.ToLower(s)
	for role, name := range roleNames {
		if ls == strings.ToLower(name) {
			return role, nil
		}
	}
	if role, ok := roleAliases[ls]; ok {
		return role, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type User struct {
	Username string `json:"username"`
	Password string `json:"-"` // as produced by the configured Hasher
	Role     Role   `json:"role"`
}

var _ core.Displayable = User{}

func (u User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u User) IsStudent() bool { return u.Role == RoleStudent }

func (u User) Describe() string {
	return fmt.Sprintf("%s (%s)", u.Username, u.Role)
}

func (u User) Record() []string {
	return []string{u.Username, u.Password, u.Role.Label()}
}

// FromRecord builds a User from one users file line.
func FromRecord(rec []string) (User, error) {
	if len(rec) != recordFields {
		return User{}, fmt.Errorf("expected %d fields, got %d", recordFields, len(rec))
	}
	role, err := ParseRole(rec[2])
	if err != nil {
		return User{}, err
	}
	uname := core.CleanString(rec[0], true /* lower */)
	if uname == "" {
		return User{}, fmt.Errorf("empty username")
	}
	return User{Username: uname, Password: rec[1], Role: role}, nil
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Username string `json:"username" validate:"required,max=32,username"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"role"`
}

// UpdateUser defines what may change on an existing User. An empty Password keeps the current one.
type UpdateUser struct {
	Password string `json:"password"`
	Role     Role   `json:"role" validate:"role"`
}
