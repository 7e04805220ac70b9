package subject

import (
	"fmt"
	"strconv"

	"github.com/Vane487/kursovarobota/core"
)

// recordFields is the number of columns in a subjects file line:
// subjectId,subjectName,ectsCredits,teacherId,semester
const recordFields = 5

// Bounds for credits and semester.
const (
	MinCredits  = 1
	MaxCredits  = 10
	MinSemester = 1
	MaxSemester = 8
)

type Subject struct {
	SubjectID string `json:"subject_id" validate:"required,alphanum,strictid=SJ"`
	Name      string `json:"name" validate:"required,max=100,nodelim"`
	Credits   int    `json:"credits" validate:"min=1,max=10"`
	Semester  int    `json:"semester" validate:"min=1,max=8"`
	// TeacherID mirrors the assignment index; it is empty when nobody teaches the subject.
	TeacherID string `json:"teacher_id" validate:"omitempty,alphanum"`
}

var _ core.Displayable = Subject{}

func (s Subject) HasTeacher() bool {
	return s.TeacherID != ""
}

func (s Subject) Describe() string {
	teacher := "no teacher"
	if s.HasTeacher() {
		teacher = "teacher " + s.TeacherID
	}
	return fmt.Sprintf("%s: %s, %d ECTS, semester %d, %s", s.SubjectID, s.Name, s.Credits, s.Semester, teacher)
}

func (s Subject) Record() []string {
	return []string{s.SubjectID, s.Name, strconv.Itoa(s.Credits), s.TeacherID, strconv.Itoa(s.Semester)}
}

// Clean trims every text field.
func (s *Subject) Clean() {
	s.SubjectID = core.CleanString(s.SubjectID)
	s.Name = core.CleanString(s.Name)
	s.TeacherID = core.CleanString(s.TeacherID)
}

// FromRecord builds a Subject from one file line. Field validation is left to the caller.
func FromRecord(rec []string) (Subject, error) {
	if len(rec) != recordFields {
		return Subject{}, fmt.Errorf("expected %d fields, got %d", recordFields, len(rec))
	}
	credits, err := strconv.Atoi(core.CleanString(rec[2]))
	if err != nil {
		return Subject{}, fmt.Errorf("credits: %w", err)
	}
	semester, err := strconv.Atoi(core.CleanString(rec[4]))
	if err != nil {
		return Subject{}, fmt.Errorf("semester: %w", err)
	}
	s := Subject{
		SubjectID: rec[0],
		Name:      rec[1],
		Credits:   credits,
		TeacherID: rec[3],
		Semester:  semester,
	}
	s.Clean()
	return s, nil
}
