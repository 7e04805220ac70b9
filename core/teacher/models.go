package teacher

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Vane487/kursovarobota/core"
)

// recordFields is the number of columns in a teachers file line:
// name,lastName,email,teacherId,department,degreeCode
const recordFields = 6

type Degree int

// Degrees, in file ordinal order.
const (
	Bachelor Degree = iota
	Master
	Doctor
)

var (
	degreeNames = map[Degree]string{Bachelor: "Bachelor", Master: "Master", Doctor: "Doctor"}
	Degrees     = []Degree{Bachelor, Master, Doctor}
)

func (d Degree) String() string {
	if name, ok := degreeNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Degree(%d)", int(d))
}

// Code is the token written to the teachers file.
func (d Degree) Code() string {
	return strings.ToUpper(d.String())
}

func (d Degree) Valid() bool {
	_, ok := degreeNames[d]
	return ok
}

// ParseDegree accepts a degree name in any case or its ordinal (0, 1, 2).
func ParseDegree(s string) (Degree, error) {
	s = core.CleanString(s)
	if n, err := strconv.Atoi(s); err == nil {
		if d := Degree(n); d.Valid() {
			return d, nil
		}
		return 0, fmt.Errorf("unknown degree ordinal %d", n)
	}
	for d, name := range degreeNames {
		if strings.EqualFold(s, name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown degree %q", s)
}

type Teacher struct {
	TeacherID  string `json:"teacher_id" validate:"required,alphanum,strictid=PR"`
	Name       string `json:"name" validate:"required,min=2,max=50,personname"`
	LastName   string `json:"last_name" validate:"required,min=2,max=50,personname"`
	Email      string `json:"email" validate:"required,min=5,email"`
	Department string `json:"department" validate:"required,nodelim"`
	Degree     Degree `json:"degree" validate:"degree"`
}

var _ core.Displayable = Teacher{}

func (t Teacher) FullName() string {
	return t.Name + " " + t.LastName
}

func (t Teacher) Describe() string {
	return fmt.Sprintf("%s: %s <%s>, %s, %s", t.TeacherID, t.FullName(), t.Email, t.Department, t.Degree)
}

func (t Teacher) Record() []string {
	return []string{t.Name, t.LastName, t.Email, t.TeacherID, t.Department, t.Degree.Code()}
}

// Clean trims every text field.
func (t *Teacher) Clean() {
	t.TeacherID = core.CleanString(t.TeacherID)
	t.Name = core.CleanString(t.Name)
	t.LastName = core.CleanString(t.LastName)
	t.Email = core.CleanString(t.Email)
	t.Department = core.CleanString(t.Department)
}

// FromRecord builds a Teacher from one file line. Field validation is left to the caller.
func FromRecord(rec []string) (Teacher, error) {
	if len(rec) != recordFields {
		return Teacher{}, fmt.Errorf("expected %d fields, got %d", recordFields, len(rec))
	}
	degree, err := ParseDegree(rec[5])
	if err != nil {
		return Teacher{}, err
	}
	t := Teacher{
		Name:       rec[0],
		LastName:   rec[1],
		Email:      rec[2],
		TeacherID:  rec[3],
		Department: rec[4],
		Degree:     degree,
	}
	t.Clean()
	return t, nil
}
