package teacher

import (
	"errors"

	"github.com/Vane487/kursovarobota/core"
)

var (
	// errors
	ErrNotFound      = errors.New("teacher not found")
	ErrIDExists      = errors.New("a teacher with this ID already exists")
	ErrIDMismatch    = errors.New("teacher ID cannot be changed")
	ErrHasAssignment = errors.New("teacher is assigned to a subject")
)

type (
	// Repository keeps teachers in insertion order. Every mutating call persists,
	// and leaves memory unchanged when persisting fails.
	Repository interface {
		All() []Teacher
		Get(id string) (Teacher, bool)
		Insert(t Teacher) error
		Replace(t Teacher) (bool, error)
		Remove(id string) (bool, error)
		Reorder(less func(a, b Teacher) bool) error
	}

	// BindingChecker reports the subject a teacher is bound to, if any.
	BindingChecker interface {
		BoundSubject(teacherID string) (string, bool)
	}

	Service struct {
		repo     Repository
		validate *core.Validator
		bindings BindingChecker
	}
)

// NewService returns a teacher Service. With a nil bindings checker, Delete is unguarded.
func NewService(repo Repository, validate *core.Validator, bindings BindingChecker) *Service {
	InitValidators(validate)
	return &Service{repo: repo, validate: validate, bindings: bindings}
}

func (svc *Service) Add(t Teacher) error {
	t.Clean()
	if err := svc.validate.Struct(t); err != nil {
		return err
	}
	if _, ok := svc.repo.Get(t.TeacherID); ok {
		return core.NewConflictError(ErrIDExists, "teacher", t.TeacherID)
	}
	return svc.repo.Insert(t)
}

// Edit replaces the teacher stored under id. The ID itself is immutable.
func (svc *Service) Edit(id string, t Teacher) error {
	id = core.CleanString(id)
	t.Clean()
	if t.TeacherID != id {
		return core.NewValidationError(ErrIDMismatch, core.FieldError{Field: "teacher_id", Error: ErrIDMismatch.Error()})
	}
	if err := svc.validate.Struct(t); err != nil {
		return err
	}
	ok, err := svc.repo.Replace(t)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Delete removes the teacher unless a subject still references them.
// A refused delete returns a ConflictError naming the subject and changes nothing.
func (svc *Service) Delete(id string) (bool, error) {
	id = core.CleanString(id)
	if _, ok := svc.repo.Get(id); !ok {
		return false, nil
	}
	if svc.bindings != nil {
		if subjectID, bound := svc.bindings.BoundSubject(id); bound {
			return false, core.NewConflictError(ErrHasAssignment, "subject", subjectID)
		}
	}
	return svc.repo.Remove(id)
}

func (svc *Service) Get(id string) (Teacher, bool) {
	return svc.repo.Get(core.CleanString(id))
}

func (svc *Service) Exists(id string) bool {
	_, ok := svc.Get(id)
	return ok
}

func (svc *Service) List() []Teacher {
	return svc.repo.All()
}

func (svc *Service) Count() int {
	return len(svc.repo.All())
}

// IDs returns every teacher ID in stored order.
func (svc *Service) IDs() []string {
	all := svc.repo.All()
	ids := make([]string, 0, len(all))
	for _, t := range all {
		ids = append(ids, t.TeacherID)
	}
	return ids
}

// SearchByName matches text against the full name, ignoring case.
func (svc *Service) SearchByName(text string) []Teacher {
	return svc.filter(func(t Teacher) bool { return core.ContainsFold(t.FullName(), text) })
}

func (svc *Service) FilterByDepartment(department string) []Teacher {
	return svc.filter(func(t Teacher) bool { return core.ContainsFold(t.Department, department) })
}

func (svc *Service) FilterByDegree(degree Degree) []Teacher {
	return svc.filter(func(t Teacher) bool { return t.Degree == degree })
}

func (svc *Service) filter(match func(Teacher) bool) []Teacher {
	found := make([]Teacher, 0)
	for _, t := range svc.repo.All() {
		if match(t) {
			found = append(found, t)
		}
	}
	return found
}

// SortByName orders teachers by last name then first name, using the locale's collation.
func (svc *Service) SortByName(asc bool) error {
	coll := core.NewCollator()
	return svc.repo.Reorder(func(a, b Teacher) bool {
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
	return svc.repo.Reorder(func(a, b Teacher) bool {
		if asc {
			return a.TeacherID < b.TeacherID
		}
		return a.TeacherID > b.TeacherID
	})
}
