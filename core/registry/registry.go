// Package registry ties the entity services to the assignment manager. It checks that
// IDs name live records before relating them, keeps each subject's TeacherID equal to the
// assignment index, and cascades deletes to the relations.
package registry

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/Vane487/kursovarobota/core"
	"github.com/Vane487/kursovarobota/core/assignment"
	"github.com/Vane487/kursovarobota/core/student"
	"github.com/Vane487/kursovarobota/core/subject"
	"github.com/Vane487/kursovarobota/core/teacher"
)

var (
	// errors
	ErrStudentNotFound = errors.New("student not found")
	ErrTeacherNotFound = errors.New("teacher not found")
	ErrSubjectNotFound = errors.New("subject not found")
	ErrEnrollmentLimit = errors.New("student has reached the maximum number of subjects")
)

// UnknownLabel stands in for the name of a record that no longer exists.
const UnknownLabel = "unknown"

type Registry struct {
	Students  *student.Service
	Teachers  *teacher.Service
	Subjects  *subject.Service
	Relations *assignment.Manager

	log         core.Logger
	maxSubjects int
}

// New returns a Registry. maxSubjects caps enrollments per student; 0 disables the cap.
func New(
	students *student.Service,
	teachers *teacher.Service,
	subjects *subject.Service,
	relations *assignment.Manager,
	logger core.Logger,
	maxSubjects int,
) *Registry {
	return &Registry{
		Students:    students,
		Teachers:    teachers,
		Subjects:    subjects,
		Relations:   relations,
		log:         logger,
		maxSubjects: maxSubjects,
	}
}

type bindings struct {
	subjects  *subject.Service
	relations *assignment.Manager
}

// Bindings reports a teacher as bound when the assignment index or any subject record names them.
func Bindings(subjects *subject.Service, relations *assignment.Manager) teacher.BindingChecker {
	return bindings{subjects: subjects, relations: relations}
}

func (b bindings) BoundSubject(teacherID string) (string, bool) {
	if subjectID, ok := b.relations.TeacherSubject(teacherID); ok {
		return subjectID, true
	}
	if s, ok := b.subjects.BoundTo(teacherID); ok {
		return s.SubjectID, true
	}
	return "", false
}

func notFound(err error, id string) error {
	return fmt.Errorf("%w: %s", err, core.CleanString(id))
}

// Teacher <-> Subject

// AssignTeacher binds a live teacher to a live subject and mirrors it on the subject record.
func (r *Registry) AssignTeacher(teacherID, subjectID string) error {
	teacherID, subjectID = core.CleanString(teacherID), core.CleanString(subjectID)
	if !r.Teachers.Exists(teacherID) {
		return notFound(ErrTeacherNotFound, teacherID)
	}
	if !r.Subjects.Exists(subjectID) {
		return notFound(ErrSubjectNotFound, subjectID)
	}
	if err := r.Relations.AssignTeacher(teacherID, subjectID); err != nil {
		return err
	}
	if err := r.Subjects.SetTeacher(subjectID, teacherID); err != nil {
		if rbErr := r.Relations.RemoveAssignment(teacherID); rbErr != nil {
			r.log.Error("rolling back assignment", "teacher", teacherID, "subject", subjectID, rbErr)
		}
		return errors.Wrap(err, "updating subject")
	}
	return nil
}

// RemoveAssignment unbinds the teacher and clears the subject's TeacherID.
// Assignments of teachers that no longer exist can still be removed.
func (r *Registry) RemoveAssignment(teacherID string) error {
	teacherID = core.CleanString(teacherID)
	subjectID, ok := r.Relations.TeacherSubject(teacherID)
	if !ok {
		if !r.Teachers.Exists(teacherID) {
			return notFound(ErrTeacherNotFound, teacherID)
		}
		return assignment.ErrNoAssignment
	}
	if err := r.Relations.RemoveAssignment(teacherID); err != nil {
		return err
	}
	if !r.Subjects.Exists(subjectID) {
		return nil
	}
	if err := r.Subjects.SetTeacher(subjectID, ""); err != nil {
		if rbErr := r.Relations.AssignTeacher(teacherID, subjectID); rbErr != nil {
			r.log.Error("rolling back assignment removal", "teacher", teacherID, "subject", subjectID, rbErr)
		}
		return errors.Wrap(err, "updating subject")
	}
	return nil
}

func (r *Registry) TeachingStatus(teacherID string) string {
	return r.Relations.TeachingStatus(teacherID)
}

// DetailedStatus is the teaching status with the subject name resolved.
func (r *Registry) DetailedStatus(teacherID string) string {
	return r.Relations.DetailedStatus(teacherID, r.Subjects)
}

// Student <-> Subject

// Enroll relates a live student to a live subject, within the per-student cap.
func (r *Registry) Enroll(studentID, subjectID string) error {
	studentID, subjectID = core.CleanString(studentID), core.CleanString(subjectID)
	if !r.Students.Exists(studentID) {
		return notFound(ErrStudentNotFound, studentID)
	}
	if !r.Subjects.Exists(subjectID) {
		return notFound(ErrSubjectNotFound, subjectID)
	}
	if r.maxSubjects > 0 && !r.Relations.IsEnrolled(studentID, subjectID) &&
		len(r.Relations.StudentSubjects(studentID)) >= r.maxSubjects {
		return core.NewConflictError(ErrEnrollmentLimit, "student", studentID)
	}
	return r.Relations.Enroll(studentID, subjectID)
}

// Unenroll does not check that the records exist, so orphaned enrollments can be removed.
func (r *Registry) Unenroll(studentID, subjectID string) error {
	return r.Relations.Unenroll(studentID, subjectID)
}

func (r *Registry) IsEnrolled(studentID, subjectID string) bool {
	return r.Relations.IsEnrolled(studentID, subjectID)
}

// StudentSubjects returns the student's enrolled subject IDs in enrollment order.
func (r *Registry) StudentSubjects(studentID string) []string {
	return r.Relations.StudentSubjects(studentID)
}

// Records

// AddSubject stores s. A non-empty TeacherID is treated as an assignment request:
// the teacher must exist and be free, otherwise nothing is stored.
func (r *Registry) AddSubject(s subject.Subject) error {
	teacherID := core.CleanString(s.TeacherID)
	if teacherID != "" {
		if !r.Teachers.Exists(teacherID) {
			return notFound(ErrTeacherNotFound, teacherID)
		}
		if _, bound := Bindings(r.Subjects, r.Relations).BoundSubject(teacherID); bound {
			return core.NewConflictError(assignment.ErrTeacherHasSubject, "teacher", teacherID)
		}
	}

	s.TeacherID = ""
	if err := r.Subjects.Add(s); err != nil {
		return err
	}
	if teacherID == "" {
		return nil
	}
	if err := r.AssignTeacher(teacherID, s.SubjectID); err != nil {
		if _, rbErr := r.Subjects.Delete(s.SubjectID); rbErr != nil {
			r.log.Error("rolling back subject", "subject", s.SubjectID, rbErr)
		}
		return err
	}
	return nil
}

// EditSubject replaces the subject's fields; its TeacherID is kept.
func (r *Registry) EditSubject(id string, s subject.Subject) error {
	return r.Subjects.Edit(id, s)
}

// DeleteTeacher refuses to delete a teacher who is still bound to a subject.
func (r *Registry) DeleteTeacher(id string) (bool, error) {
	return r.Teachers.Delete(id)
}

// DeleteStudent removes the student and then every enrollment of theirs.
func (r *Registry) DeleteStudent(id string) (bool, error) {
	ok, err := r.Students.Delete(id)
	if err != nil || !ok {
		return ok, err
	}
	if n, err := r.Relations.DropStudent(id); err != nil {
		return true, errors.Wrap(err, "dropping enrollments")
	} else if n > 0 {
		r.log.Info("dropped enrollments of deleted student", "student", id, "count", n)
	}
	return true, nil
}

// DeleteSubject removes the subject and then its assignment and enrollments.
func (r *Registry) DeleteSubject(id string) (bool, error) {
	ok, err := r.Subjects.Delete(id)
	if err != nil || !ok {
		return ok, err
	}
	if n, err := r.Relations.DropSubject(id); err != nil {
		return true, errors.Wrap(err, "dropping relations")
	} else if n > 0 {
		r.log.Info("dropped relations of deleted subject", "subject", id, "count", n)
	}
	return true, nil
}
