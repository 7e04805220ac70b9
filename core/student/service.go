package student

import (
	"errors"

	"github.com/Vane487/kursovarobota/core"
)

var (
	// errors
	ErrNotFound   = errors.New("student not found")
	ErrIDExists   = errors.New("a student with this ID already exists")
	ErrIDMismatch = errors.New("student ID cannot be changed")
)

type (
	// Repository keeps students in insertion order. Every mutating call persists,
	// and leaves memory unchanged when persisting fails.
	Repository interface {
		All() []Student
		Get(id string) (Student, bool)
		Insert(s Student) error
		Replace(s Student) (bool, error)
		Remove(id string) (bool, error)
		Reorder(less func(a, b Student) bool) error
	}

	Service struct {
		repo     Repository
		validate *core.Validator
	}
)

func NewService(repo Repository, validate *core.Validator) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) Add(s Student) error {
	s.Clean()
	if err := svc.validate.Struct(s); err != nil {
		return err
	}
	if _, ok := svc.repo.Get(s.StudentID); ok {
		return core.NewConflictError(ErrIDExists, "student", s.StudentID)
	}
	return svc.repo.Insert(s)
}

// Edit replaces the student stored under id. The ID itself is immutable.
func (svc *Service) Edit(id string, s Student) error {
	id = core.CleanString(id)
	s.Clean()
	if s.StudentID != id {
		return core.NewValidationError(ErrIDMismatch, core.FieldError{Field: "student_id", Error: ErrIDMismatch.Error()})
	}
	if err := svc.validate.Struct(s); err != nil {
		return err
	}
	ok, err := svc.repo.Replace(s)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Delete removes the student record only; enrollments are dropped by the registry.
func (svc *Service) Delete(id string) (bool, error) {
	return svc.repo.Remove(core.CleanString(id))
}

func (svc *Service) Get(id string) (Student, bool) {
	return svc.repo.Get(core.CleanString(id))
}

func (svc *Service) Exists(id string) bool {
	_, ok := svc.Get(id)
	return ok
}

func (svc *Service) List() []Student {
	return svc.repo.All()
}

func (svc *Service) Count() int {
	return len(svc.repo.All())
}

// IDs returns every student ID in stored order.
func (svc *Service) IDs() []string {
	all := svc.repo.All()
	ids := make([]string, 0, len(all))
	for _, s := range all {
		ids = append(ids, s.StudentID)
	}
	return ids
}

// SearchByName matches text against the full name, ignoring case.
func (svc *Service) SearchByName(text string) []Student {
	return svc.filter(func(s Student) bool { return core.ContainsFold(s.FullName(), text) })
}

func (svc *Service) FilterByProgram(program string) []Student {
	return svc.filter(func(s Student) bool { return core.ContainsFold(s.Program, program) })
}

func (svc *Service) filter(match func(Student) bool) []Student {
	found := make([]Student, 0)
	for _, s := range svc.repo.All() {
		if match(s) {
			found = append(found, s)
		}
	}
	return found
}

// SortByName orders students by last name then first name, using the locale's collation.
func (svc *Service) SortByName(asc bool) error {
	coll := core.NewCollator()
	return svc.repo.Reorder(func(a, b Student) bool {
		c := coll.CompareString(a.LastName, b.LastName)
		if c == 0 {
			c = coll.CompareString(a.Name, b.Name)
		}
		if asc {
			return c < 0
		}
		return c > 0
	})
}

func (svc *Service) SortByID(asc bool) error {
	return svc.repo.Reorder(func(a, b Student) bool {
		if asc {
			return a.StudentID < b.StudentID
		}
		return a.StudentID > b.StudentID
	})
}
