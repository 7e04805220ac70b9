// Package assignment owns the teacher-subject assignments and the student-subject enrollments.
//
// Each relation is held in two indexes that always agree: teacher->subject and subject->teacher
// for assignments (one-to-one), student->subjects and subject->students for enrollments
// (many-to-many). The Manager does not know whether the IDs name live records; callers check that.
package assignment

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/Vane487/kursovarobota/core"
)

// StatusUnassigned is the teaching status of a teacher without a subject.
const StatusUnassigned = "unassigned"

var (
	// errors
	ErrTeacherHasSubject = errors.New("teacher already has an assigned subject")
	ErrSubjectHasTeacher = errors.New("subject already has an assigned teacher")
	ErrNoAssignment      = errors.New("teacher has no assigned subject")
	ErrAlreadyEnrolled   = errors.New("student is already enrolled in this subject")
	ErrNotEnrolled       = errors.New("student is not enrolled in this subject")
	ErrEmptyID           = errors.New("ID cannot be empty")
)

type Kind string

// Relation kinds, as written in the relations file.
const (
	KindAssignment Kind = "T"
	KindEnrollment Kind = "S"
)

// Relation is one edge: a teacher (KindAssignment) or a student (KindEnrollment) bound to a subject.
type Relation struct {
	Kind      Kind
	OwnerID   string
	SubjectID string
}

// Store persists the full set of relations.
type Store interface {
	LoadRelations() ([]Relation, core.LoadReport, error)
	SaveRelations(rels []Relation) error
}

// SubjectLookup resolves subject names for display.
type SubjectLookup interface {
	Name(subjectID string) (string, bool)
}

type Stats struct {
	Assignments int
	Students    int // students with at least one enrollment
	Subjects    int // subjects with at least one student
	Enrollments int
}

type Manager struct {
	mu    sync.RWMutex
	store Store
	log   core.Logger

	teacherSubject  map[string]string
	subjectTeacher  map[string]string
	studentSubjects map[string][]string
	subjectStudents map[string][]string
}

// NewManager returns an empty Manager. A nil store keeps everything in memory.
func NewManager(store Store, logger core.Logger) *Manager {
	m := &Manager{store: store, log: logger}
	m.reset()
	return m
}

func (m *Manager) reset() {
	m.teacherSubject = make(map[string]string)
	m.subjectTeacher = make(map[string]string)
	m.studentSubjects = make(map[string][]string)
	m.subjectStudents = make(map[string][]string)
}

// Load replaces the in-memory relations with the stored ones. Lines that contradict
// earlier ones (a second subject for a teacher, a repeated enrollment) are skipped and counted.
func (m *Manager) Load() (core.LoadReport, error) {
	if m.store == nil {
		return core.LoadReport{}, nil
	}
	rels, report, err := m.store.LoadRelations()
	if err != nil {
		return report, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.reset()
	report.Loaded = 0
	for _, rel := range rels {
		var err error
		switch rel.Kind {
		case KindAssignment:
			err = m.assign(rel.OwnerID, rel.SubjectID)
		case KindEnrollment:
			err = m.enroll(rel.OwnerID, rel.SubjectID)
		default:
			err = errors.Errorf("unknown relation kind %q", rel.Kind)
		}
		if err != nil {
			report.Skipped++
			m.log.Warn("skipping relation", "file", report.File, "kind", string(rel.Kind),
				"owner", rel.OwnerID, "subject", rel.SubjectID, err)
			continue
		}
		report.Loaded++
	}
	return report, nil
}

// Save writes every relation through the store.
func (m *Manager) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.persist()
}

// Clear drops every relation from memory without touching the store.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
}

// Teacher <-> Subject

// AssignTeacher binds teacherID to subjectID. Neither may already be bound.
func (m *Manager) AssignTeacher(teacherID, subjectID string) error {
	teacherID, subjectID = core.CleanString(teacherID), core.CleanString(subjectID)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mutate(func() error { return m.assign(teacherID, subjectID) })
}

func (m *Manager) assign(teacherID, subjectID string) error {
	if err := checkIDs(teacherID, subjectID); err != nil {
		return err
	}
	if _, ok := m.teacherSubject[teacherID]; ok {
		return core.NewConflictError(ErrTeacherHasSubject, "teacher", teacherID)
	}
	if _, ok := m.subjectTeacher[subjectID]; ok {
		return core.NewConflictError(ErrSubjectHasTeacher, "subject", subjectID)
	}
	m.teacherSubject[teacherID] = subjectID
	m.subjectTeacher[subjectID] = teacherID
	return nil
}

// RemoveAssignment unbinds teacherID from its subject.
func (m *Manager) RemoveAssignment(teacherID string) error {
	teacherID = core.CleanString(teacherID)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mutate(func() error {
		subjectID, ok := m.teacherSubject[teacherID]
		if !ok {
			return ErrNoAssignment
		}
		delete(m.teacherSubject, teacherID)
		delete(m.subjectTeacher, subjectID)
		return nil
	})
}

// TeachingStatus returns the subject ID taught by teacherID, or StatusUnassigned.
func (m *Manager) TeachingStatus(teacherID string) string {
	if subjectID, ok := m.TeacherSubject(teacherID); ok {
		return subjectID
	}
	return StatusUnassigned
}

// DetailedStatus is TeachingStatus with the subject name, as "teaches <name> (<id>)".
func (m *Manager) DetailedStatus(teacherID string, subjects SubjectLookup) string {
	subjectID, ok := m.TeacherSubject(teacherID)
	if !ok {
		return StatusUnassigned
	}
	if subjects != nil {
		if name, found := subjects.Name(subjectID); found {
			return "teaches " + name + " (" + subjectID + ")"
		}
	}
	return subjectID
}

func (m *Manager) TeacherSubject(teacherID string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	subjectID, ok := m.teacherSubject[core.CleanString(teacherID)]
	return subjectID, ok
}

func (m *Manager) SubjectTeacher(subjectID string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	teacherID, ok := m.subjectTeacher[core.CleanString(subjectID)]
	return teacherID, ok
}

// Assignments returns a copy of the teacher->subject index.
func (m *Manager) Assignments() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cp := make(map[string]string, len(m.teacherSubject))
	for t, s := range m.teacherSubject {
		cp[t] = s
	}
	return cp
}

// Student <-> Subject

// Enroll adds subjectID to the end of the student's list.
func (m *Manager) Enroll(studentID, subjectID string) error {
	studentID, subjectID = core.CleanString(studentID), core.CleanString(subjectID)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mutate(func() error { return m.enroll(studentID, subjectID) })
}

func (m *Manager) enroll(studentID, subjectID string) error {
	if err := checkIDs(studentID, subjectID); err != nil {
		return err
	}
	if indexOf(m.studentSubjects[studentID], subjectID) >= 0 {
		return core.NewConflictError(ErrAlreadyEnrolled, "student", studentID)
	}
	m.studentSubjects[studentID] = append(m.studentSubjects[studentID], subjectID)
	m.subjectStudents[subjectID] = append(m.subjectStudents[subjectID], studentID)
	return nil
}

func (m *Manager) Unenroll(studentID, subjectID string) error {
	studentID, subjectID = core.CleanString(studentID), core.CleanString(subjectID)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mutate(func() error {
		if indexOf(m.studentSubjects[studentID], subjectID) < 0 {
			return ErrNotEnrolled
		}
		m.unlink(studentID, subjectID)
		return nil
	})
}

// unlink removes one enrollment edge from both indexes, dropping emptied keys.
func (m *Manager) unlink(studentID, subjectID string) {
	if subjects := without(m.studentSubjects[studentID], subjectID); len(subjects) > 0 {
		m.studentSubjects[studentID] = subjects
	} else {
		delete(m.studentSubjects, studentID)
	}
	if students := without(m.subjectStudents[subjectID], studentID); len(students) > 0 {
		m.subjectStudents[subjectID] = students
	} else {
		delete(m.subjectStudents, subjectID)
	}
}

func (m *Manager) IsEnrolled(studentID, subjectID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return indexOf(m.studentSubjects[core.CleanString(studentID)], core.CleanString(subjectID)) >= 0
}

// StudentSubjects returns the student's subjects in enrollment order.
func (m *Manager) StudentSubjects(studentID string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string{}, m.studentSubjects[core.CleanString(studentID)]...)
}

// SubjectStudents returns the subject's students in enrollment order.
func (m *Manager) SubjectStudents(subjectID string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string{}, m.subjectStudents[core.CleanString(subjectID)]...)
}

// Enrollments returns a copy of the student->subjects index.
func (m *Manager) Enrollments() map[string][]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cp := make(map[string][]string, len(m.studentSubjects))
	for st, subjects := range m.studentSubjects {
		cp[st] = append([]string{}, subjects...)
	}
	return cp
}

// DropStudent removes every enrollment of studentID in one save and returns how many there were.
func (m *Manager) DropStudent(studentID string) (int, error) {
	studentID = core.CleanString(studentID)
	m.mu.Lock()
	defer m.mu.Unlock()

	subjects := append([]string{}, m.studentSubjects[studentID]...)
	if len(subjects) == 0 {
		return 0, nil
	}
	err := m.mutate(func() error {
		for _, subjectID := range subjects {
			m.unlink(studentID, subjectID)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(subjects), nil
}

// DropSubject removes the subject's assignment and all its enrollments in one save.
// It returns the number of edges removed.
func (m *Manager) DropSubject(subjectID string) (int, error) {
	subjectID = core.CleanString(subjectID)
	m.mu.Lock()
	defer m.mu.Unlock()

	students := append([]string{}, m.subjectStudents[subjectID]...)
	teacherID, assigned := m.subjectTeacher[subjectID]
	removed := len(students)
	if assigned {
		removed++
	}
	if removed == 0 {
		return 0, nil
	}
	err := m.mutate(func() error {
		if assigned {
			delete(m.teacherSubject, teacherID)
			delete(m.subjectTeacher, subjectID)
		}
		for _, studentID := range students {
			m.unlink(studentID, subjectID)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st := Stats{
		Assignments: len(m.teacherSubject),
		Students:    len(m.studentSubjects),
		Subjects:    len(m.subjectStudents),
	}
	for _, subjects := range m.studentSubjects {
		st.Enrollments += len(subjects)
	}
	return st
}

// Relations lists every edge in file order: assignments sorted by teacher ID, then
// enrollments grouped by student ID (sorted), each student's subjects in enrollment order.
func (m *Manager) Relations() []Relation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.relations()
}

func (m *Manager) relations() []Relation {
	rels := make([]Relation, 0, len(m.teacherSubject)+len(m.studentSubjects))

	teachers := make([]string, 0, len(m.teacherSubject))
	for t := range m.teacherSubject {
		teachers = append(teachers, t)
	}
	sort.Strings(teachers)
	for _, t := range teachers {
		rels = append(rels, Relation{Kind: KindAssignment, OwnerID: t, SubjectID: m.teacherSubject[t]})
	}

	students := make([]string, 0, len(m.studentSubjects))
	for st := range m.studentSubjects {
		students = append(students, st)
	}
	sort.Strings(students)
	for _, st := range students {
		for _, s := range m.studentSubjects[st] {
			rels = append(rels, Relation{Kind: KindEnrollment, OwnerID: st, SubjectID: s})
		}
	}
	return rels
}

// mutate runs fn and persists the result. When fn fails nothing is saved; when saving fails
// the indexes are restored to their state before fn. Callers hold the write lock.
func (m *Manager) mutate(fn func() error) error {
	snap := m.snapshot()
	if err := fn(); err != nil {
		return err
	}
	if err := m.persist(); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

func (m *Manager) persist() error {
	if m.store == nil {
		return nil
	}
	return errors.Wrap(m.store.SaveRelations(m.relations()), "saving relations")
}

type snapshot struct {
	teacherSubject  map[string]string
	subjectTeacher  map[string]string
	studentSubjects map[string][]string
	subjectStudents map[string][]string
}

func (m *Manager) snapshot() snapshot {
	return snapshot{
		teacherSubject:  copyIndex(m.teacherSubject),
		subjectTeacher:  copyIndex(m.subjectTeacher),
		studentSubjects: copyLists(m.studentSubjects),
		subjectStudents: copyLists(m.subjectStudents),
	}
}

func (m *Manager) restore(snap snapshot) {
	m.teacherSubject = snap.teacherSubject
	m.subjectTeacher = snap.subjectTeacher
	m.studentSubjects = snap.studentSubjects
	m.subjectStudents = snap.subjectStudents
}

func copyIndex(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func copyLists(src map[string][]string) map[string][]string {
	dst := make(map[string][]string, len(src))
	for k, v := range src {
		dst[k] = append([]string{}, v...)
	}
	return dst
}

func checkIDs(ownerID, subjectID string) error {
	var flds []core.FieldError
	if ownerID == "" {
		flds = append(flds, core.FieldError{Field: "owner_id", Error: ErrEmptyID.Error()})
	}
	if subjectID == "" {
		flds = append(flds, core.FieldError{Field: "subject_id", Error: ErrEmptyID.Error()})
	}
	if flds != nil {
		return core.NewValidationError(ErrEmptyID, flds...)
	}
	return nil
}

func indexOf(list []string, id string) int {
	for i, v := range list {
		if v == id {
			return i
		}
	}
	return -1
}

func without(list []string, id string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
