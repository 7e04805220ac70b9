package student

import (
	"fmt"

	"github.com/Vane487/kursovarobota/core"
)

// recordFields is the number of columns in a students file line:
// name,lastName,email,studentId,educationalProgram
const recordFields = 5

type Student struct {
	StudentID string `json:"student_id" validate:"required,alphanum"`
	Name      string `json:"name" validate:"required,min=2,max=50,personname"`
	LastName  string `json:"last_name" validate:"required,min=2,max=50,personname"`
	Email     string `json:"email" validate:"required,min=5,email"`
	Program   string `json:"program" validate:"required,nodelim"`
}

var _ core.Displayable = Student{}

func (s Student) FullName() string {
	return s.Name + " " + s.LastName
}

func (s Student) Describe() string {
	return fmt.Sprintf("%s: %s <%s>, %s", s.StudentID, s.FullName(), s.Email, s.Program)
}

func (s Student) Record() []string {
	return []string{s.Name, s.LastName, s.Email, s.StudentID, s.Program}
}

// Clean trims every field.
func (s *Student) Clean() {
	s.StudentID = core.CleanString(s.StudentID)
	s.Name = core.CleanString(s.Name)
	s.LastName = core.CleanString(s.LastName)
	s.Email = core.CleanString(s.Email)
	s.Program = core.CleanString(s.Program)
}

// FromRecord builds a Student from one file line. Field validation is left to the caller.
func FromRecord(rec []string) (Student, error) {
	if len(rec) != recordFields {
		return Student{}, fmt.Errorf("expected %d fields, got %d", recordFields, len(rec))
	}
	s := Student{
		Name:      rec[0],
		LastName:  rec[1],
		Email:     rec[2],
		StudentID: rec[3],
		Program:   rec[4],
	}
	s.Clean()
	return s, nil
}
