package subject

import (
	"errors"

	"github.com/Vane487/kursovarobota/core"
)

var (
	// errors
	ErrNotFound   = errors.New("subject not found")
	ErrIDExists   = errors.New("a subject with this ID already exists")
	ErrIDMismatch = errors.New("subject ID cannot be changed")
)

type (
	// Repository keeps subjects in insertion order. Every mutating call persists,
	// and leaves memory unchanged when persisting fails.
	Repository interface {
		All() []Subject
		Get(id string) (Subject, bool)
		Insert(s Subject) error
		Replace(s Subject) (bool, error)
		Remove(id string) (bool, error)
		Reorder(less func(a, b Subject) bool) error
	}

	Service struct {
		repo     Repository
		validate *core.Validator
	}
)

func NewService(repo Repository, validate *core.Validator) *Service {
	return &Service{repo: repo, validate: validate}
}

// Add stores s as given, TeacherID included. Use the registry to add a subject together with its assignment.
func (svc *Service) Add(s Subject) error {
	s.Clean()
	if err := svc.validate.Struct(s); err != nil {
		return err
	}
	if _, ok := svc.repo.Get(s.SubjectID); ok {
		return core.NewConflictError(ErrIDExists, "subject", s.SubjectID)
	}
	return svc.repo.Insert(s)
}

// Edit replaces the subject stored under id. The ID is immutable and the stored
// TeacherID is kept: assignments change through SetTeacher only.
func (svc *Service) Edit(id string, s Subject) error {
	id = core.CleanString(id)
	s.Clean()
	if s.SubjectID != id {
		return core.NewValidationError(ErrIDMismatch, core.FieldError{Field: "subject_id", Error: ErrIDMismatch.Error()})
	}
	cur, ok := svc.repo.Get(id)
	if !ok {
		return ErrNotFound
	}
	s.TeacherID = cur.TeacherID
	if err := svc.validate.Struct(s); err != nil {
		return err
	}
	if _, err := svc.repo.Replace(s); err != nil {
		return err
	}
	return nil
}

// SetTeacher rewrites the TeacherID mirror of a subject. An empty teacherID clears it.
func (svc *Service) SetTeacher(id, teacherID string) error {
	s, ok := svc.repo.Get(core.CleanString(id))
	if !ok {
		return ErrNotFound
	}
	teacherID = core.CleanString(teacherID)
	if s.TeacherID == teacherID {
		return nil
	}
	s.TeacherID = teacherID
	_, err := svc.repo.Replace(s)
	return err
}

// Delete removes the subject record only; assignment and enrollments are dropped by the registry.
func (svc *Service) Delete(id string) (bool, error) {
	return svc.repo.Remove(core.CleanString(id))
}

func (svc *Service) Get(id string) (Subject, bool) {
	return svc.repo.Get(core.CleanString(id))
}

func (svc *Service) Exists(id string) bool {
	_, ok := svc.Get(id)
	return ok
}

// Name returns the subject's name, for display lookups.
func (svc *Service) Name(id string) (string, bool) {
	s, ok := svc.Get(id)
	return s.Name, ok
}

func (svc *Service) List() []Subject {
	return svc.repo.All()
}

func (svc *Service) Count() int {
	return len(svc.repo.All())
}

// IDs returns every subject ID in stored order.
func (svc *Service) IDs() []string {
	all := svc.repo.All()
	ids := make([]string, 0, len(all))
	for _, s := range all {
		ids = append(ids, s.SubjectID)
	}
	return ids
}

// BoundTo returns the first subject whose TeacherID is teacherID.
func (svc *Service) BoundTo(teacherID string) (Subject, bool) {
	teacherID = core.CleanString(teacherID)
	if teacherID == "" {
		return Subject{}, false
	}
	for _, s := range svc.repo.All() {
		if s.TeacherID == teacherID {
			return s, true
		}
	}
	return Subject{}, false
}

// SearchByName matches text against the subject name, ignoring case.
func (svc *Service) SearchByName(text string) []Subject {
	return svc.filter(func(s Subject) bool { return core.ContainsFold(s.Name, text) })
}

func (svc *Service) FilterBySemester(semester int) []Subject {
	return svc.filter(func(s Subject) bool { return s.Semester == semester })
}

// FilterByCredits returns subjects whose credits fall in [min, max].
func (svc *Service) FilterByCredits(min, max int) []Subject {
	return svc.filter(func(s Subject) bool { return s.Credits >= min && s.Credits <= max })
}

func (svc *Service) filter(match func(Subject) bool) []Subject {
	found := make([]Subject, 0)
	for _, s := range svc.repo.All() {
		if match(s) {
			found = append(found, s)
		}
	}
	return found
}

// SortByName orders subjects by name, using the locale's collation.
func (svc *Service) SortByName(asc bool) error {
	coll := core.NewCollator()
	return svc.repo.Reorder(func(a, b Subject) bool {
		c := coll.CompareString(a.Name, b.Name)
		if asc {
			return c < 0
		}
		return c > 0
	})
}

func (svc *Service) SortByID(asc bool) error {
	return svc.repo.Reorder(func(a, b Subject) bool {
		if asc {
			return a.SubjectID < b.SubjectID
		}
		return a.SubjectID > b.SubjectID
	})
}
