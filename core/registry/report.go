package registry

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/Vane487/kursovarobota/core"
	"github.com/Vane487/kursovarobota/core/assignment"
	"github.com/Vane487/kursovarobota/core/student"
	"github.com/Vane487/kursovarobota/core/subject"
	"github.com/Vane487/kursovarobota/core/teacher"
)

// Sync makes subject TeacherIDs agree with the assignment index, which wins any disagreement.
// A subject naming a live, free teacher that the index does not know about is imported as an
// assignment. It returns the number of subjects changed.
func (r *Registry) Sync() (int, error) {
	var changed int
	for _, s := range r.Subjects.List() {
		indexed, assigned := r.Relations.SubjectTeacher(s.SubjectID)
		switch {
		case assigned && s.TeacherID == indexed:
			continue
		case assigned:
			r.log.Warn("subject teacher differs from assignments, using assignments",
				"subject", s.SubjectID, "record", s.TeacherID, "assigned", indexed)
			if err := r.Subjects.SetTeacher(s.SubjectID, indexed); err != nil {
				return changed, err
			}
		case s.TeacherID == "":
			continue
		case r.importable(s.TeacherID):
			r.log.Info("importing assignment from subject record", "subject", s.SubjectID, "teacher", s.TeacherID)
			if err := r.Relations.AssignTeacher(s.TeacherID, s.SubjectID); err != nil {
				return changed, err
			}
		default:
			r.log.Warn("clearing subject teacher that cannot be assigned", "subject", s.SubjectID, "teacher", s.TeacherID)
			if err := r.Subjects.SetTeacher(s.SubjectID, ""); err != nil {
				return changed, err
			}
		}
		changed++
	}
	return changed, nil
}

func (r *Registry) importable(teacherID string) bool {
	if !r.Teachers.Exists(teacherID) {
		return false
	}
	_, bound := r.Relations.TeacherSubject(teacherID)
	return !bound
}

// Orphan is a relation with an endpoint that does not resolve to a live record.
type Orphan struct {
	Kind      assignment.Kind
	OwnerID   string
	SubjectID string
	Reason    string
}

func (o Orphan) String() string {
	return string(o.Kind) + "|" + o.OwnerID + "|" + o.SubjectID + ": " + o.Reason
}

// Orphans lists every relation whose teacher, student or subject is missing.
func (r *Registry) Orphans() []Orphan {
	orphans := make([]Orphan, 0)
	for _, rel := range r.Relations.Relations() {
		var missing []string
		switch rel.Kind {
		case assignment.KindAssignment:
			if !r.Teachers.Exists(rel.OwnerID) {
				missing = append(missing, "teacher")
			}
		case assignment.KindEnrollment:
			if !r.Students.Exists(rel.OwnerID) {
				missing = append(missing, "student")
			}
		}
		if !r.Subjects.Exists(rel.SubjectID) {
			missing = append(missing, "subject")
		}
		if missing != nil {
			orphans = append(orphans, Orphan{
				Kind:      rel.Kind,
				OwnerID:   rel.OwnerID,
				SubjectID: rel.SubjectID,
				Reason:    "missing " + strings.Join(missing, " and "),
			})
		}
	}
	return orphans
}

// AssignmentRow is one teacher-subject assignment with names resolved.
type AssignmentRow struct {
	TeacherID   string
	TeacherName string
	SubjectID   string
	SubjectName string
}

// EnrollmentRow is one student-subject enrollment with names resolved.
type EnrollmentRow struct {
	StudentID   string
	StudentName string
	SubjectID   string
	SubjectName string
}

func (r *Registry) teacherName(id string) string {
	if t, ok := r.Teachers.Get(id); ok {
		return t.FullName()
	}
	return UnknownLabel
}

func (r *Registry) studentName(id string) string {
	if s, ok := r.Students.Get(id); ok {
		return s.FullName()
	}
	return UnknownLabel
}

func (r *Registry) subjectName(id string) string {
	if name, ok := r.Subjects.Name(id); ok {
		return name
	}
	return UnknownLabel
}

// AssignmentRows lists assignments ordered by teacher ID.
func (r *Registry) AssignmentRows() []AssignmentRow {
	assignments := r.Relations.Assignments()
	teachers := make([]string, 0, len(assignments))
	for t := range assignments {
		teachers = append(teachers, t)
	}
	sort.Strings(teachers)

	rows := make([]AssignmentRow, 0, len(teachers))
	for _, t := range teachers {
		rows = append(rows, AssignmentRow{
			TeacherID:   t,
			TeacherName: r.teacherName(t),
			SubjectID:   assignments[t],
			SubjectName: r.subjectName(assignments[t]),
		})
	}
	return rows
}

// EnrollmentRows lists enrollments grouped by student ID, each in enrollment order.
// With studentIDs given, only those students are listed.
func (r *Registry) EnrollmentRows(studentIDs ...string) []EnrollmentRow {
	enrollments := r.Relations.Enrollments()
	if len(studentIDs) == 0 {
		for st := range enrollments {
			studentIDs = append(studentIDs, st)
		}
		sort.Strings(studentIDs)
	}

	rows := make([]EnrollmentRow, 0)
	for _, st := range studentIDs {
		st = core.CleanString(st)
		for _, s := range enrollments[st] {
			rows = append(rows, EnrollmentRow{
				StudentID:   st,
				StudentName: r.studentName(st),
				SubjectID:   s,
				SubjectName: r.subjectName(s),
			})
		}
	}
	return rows
}

// Roster is a point-in-time copy of every record and relation.
type Roster struct {
	Students    []student.Student
	Teachers    []teacher.Teacher
	Subjects    []subject.Subject
	Assignments []AssignmentRow
	Enrollments []EnrollmentRow
}

func (r *Registry) Roster() Roster {
	return Roster{
		Students:    r.Students.List(),
		Teachers:    r.Teachers.List(),
		Subjects:    r.Subjects.List(),
		Assignments: r.AssignmentRows(),
		Enrollments: r.EnrollmentRows(),
	}
}

type Kind string

// Record kinds for Suggest.
const (
	KindStudent Kind = "student"
	KindTeacher Kind = "teacher"
	KindSubject Kind = "subject"
)

const (
	suggestMinRatio = .6
	suggestMax      = 3
)

// Suggest returns up to three existing IDs of kind that look like id, closest first.
func (r *Registry) Suggest(kind Kind, id string) []string {
	var candidates []string
	switch kind {
	case KindStudent:
		candidates = r.Students.IDs()
	case KindTeacher:
		candidates = r.Teachers.IDs()
	case KindSubject:
		candidates = r.Subjects.IDs()
	}
	return closest(core.CleanString(id), candidates)
}

func closest(id string, candidates []string) []string {
	type scored struct {
		id    string
		ratio float64
	}
	target := strings.Split(strings.ToUpper(id), "")
	matches := make([]scored, 0)
	for _, c := range candidates {
		if c == id {
			continue
		}
		ratio := difflib.NewMatcher(target, strings.Split(strings.ToUpper(c), "")).Ratio()
		if ratio >= suggestMinRatio {
			matches = append(matches, scored{id: c, ratio: ratio})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].ratio > matches[j].ratio })

	out := make([]string, 0, suggestMax)
	for i := 0; i < len(matches) && i < suggestMax; i++ {
		out = append(out, matches[i].id)
	}
	return out
}
