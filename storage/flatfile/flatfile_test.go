package flatfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vane487/kursovarobota/core"
	"github.com/Vane487/kursovarobota/core/assignment"
	"github.com/Vane487/kursovarobota/core/student"
	"github.com/Vane487/kursovarobota/core/subject"
	"github.com/Vane487/kursovarobota/core/teacher"
	"github.com/Vane487/kursovarobota/core/user"
	logsvc "github.com/Vane487/kursovarobota/services/logger"
)

func testFiles(dir string) Files {
	return Files{
		Students:    filepath.Join(dir, "students.csv"),
		Teachers:    filepath.Join(dir, "teachers.csv"),
		Subjects:    filepath.Join(dir, "subjects.csv"),
		Users:       filepath.Join(dir, "users.txt"),
		Assignments: filepath.Join(dir, "assignments.txt"),
	}
}

func setup(t *testing.T) (*DB, Files) {
	t.Helper()
	files := testFiles(t.TempDir())
	db, err := Open(files, core.NewValidator(false), logsvc.NewNop())
	require.NoError(t, err)
	return db, files
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestDB_RoundTrip(t *testing.T) {
	db, files := setup(t)
	students := NewStudentRepository(db)
	teachers := NewTeacherRepository(db)
	subjects := NewSubjectRepository(db)
	users := NewUserRepository(db)

	wantStudents := []student.Student{
		{StudentID: "ST1", Name: "Олена", LastName: "Коваль", Email: "olena@uni.ua", Program: "Computer Science, Applied"},
		{StudentID: "ST2", Name: "Ivan", LastName: "Franko", Email: "ivan@uni.ua", Program: "Philology"},
	}
	wantTeachers := []teacher.Teacher{
		{TeacherID: "PR001", Name: "Taras", LastName: "Shevchenko", Email: "taras@uni.ua", Department: "Arts", Degree: teacher.Doctor},
	}
	wantSubjects := []subject.Subject{
		{SubjectID: "SJ001", Name: "Algorithms, Data Structures", Credits: 5, Semester: 2, TeacherID: "PR001"},
		{SubjectID: "SJ002", Name: "Poetry", Credits: 3, Semester: 1},
	}
	wantUsers := []user.User{
		{Username: "admin", Password: "admin123", Role: user.RoleAdmin},
		{Username: "olena", Password: "pass12", Role: user.RoleStudent},
	}
	for _, s := range wantStudents {
		require.NoError(t, students.Insert(s))
	}
	for _, tc := range wantTeachers {
		require.NoError(t, teachers.Insert(tc))
	}
	for _, s := range wantSubjects {
		require.NoError(t, subjects.Insert(s))
	}
	for _, u := range wantUsers {
		require.NoError(t, users.Insert(u))
	}
	require.NoError(t, db.Save())

	db.Clear()
	assert.Empty(t, students.All())

	reports, err := db.Load()
	require.NoError(t, err)
	for _, r := range reports {
		assert.Zero(t, r.Skipped, r.File)
	}
	assert.Equal(t, wantStudents, students.All())
	assert.Equal(t, wantTeachers, teachers.All())
	assert.Equal(t, wantSubjects, subjects.All())
	assert.Equal(t, wantUsers, users.All())

	assert.Equal(t, "Taras,Shevchenko,taras@uni.ua,PR001,Arts,DOCTOR\n", readFile(t, files.Teachers))
	assert.Equal(t, "admin:admin123:Адміністратор\nolena:pass12:Студент\n", readFile(t, files.Users))
	assert.Contains(t, readFile(t, files.Subjects), `SJ001,"Algorithms, Data Structures",5,PR001,2`)
}

func TestDB_LoadSkipsMalformedLines(t *testing.T) {
	tests := []struct {
		name        string
		file        func(Files) string
		content     string
		wantLoaded  int
		wantSkipped int
	}{
		{
			name:        "students: one good, one short",
			file:        func(f Files) string { return f.Students },
			content:     "Ivan,Franko,ivan@uni.ua,ST1,Philology\nbroken,line\n",
			wantLoaded:  1,
			wantSkipped: 1,
		},
		{
			name:        "students: bad email and duplicate ID",
			file:        func(f Files) string { return f.Students },
			content:     "Ivan,Franko,ivan@uni.ua,ST1,Philology\nOlena,Koval,not-an-email,ST2,CS\nIvan,Franko,ivan@uni.ua,ST1,Philology\n",
			wantLoaded:  1,
			wantSkipped: 2,
		},
		{
			name:        "teachers: ordinals and tokens",
			file:        func(f Files) string { return f.Teachers },
			content:     "Taras,Shevchenko,t@uni.ua,PR001,Arts,2\nLesya,Ukrainka,l@uni.ua,PR002,Arts,master\nBad,Degree,b@uni.ua,PR003,Arts,7\n",
			wantLoaded:  2,
			wantSkipped: 1,
		},
		{
			name:        "subjects: credits out of range",
			file:        func(f Files) string { return f.Subjects },
			content:     "SJ001,Algorithms,5,,2\nSJ002,Poetry,11,,1\nSJ003,Logic,x,,1\n",
			wantLoaded:  1,
			wantSkipped: 2,
		},
		{
			name:        "users: labels and aliases",
			file:        func(f Files) string { return f.Users },
			content:     "admin:admin123:Адміністратор\nboss:pass12:administrator\nt1:pass12:Teacher\nx:pass12:janitor\n",
			wantLoaded:  3,
			wantSkipped: 1,
		},
		{
			name:        "blank lines are ignored",
			file:        func(f Files) string { return f.Students },
			content:     "\n   \nIvan,Franko,ivan@uni.ua,ST1,Philology\n\n",
			wantLoaded:  1,
			wantSkipped: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, files := setup(t)
			path := tt.file(files)
			writeFile(t, path, tt.content)

			reports, err := db.Load()
			require.NoError(t, err)
			var got core.LoadReport
			for _, r := range reports {
				if r.File == path {
					got = r
				}
			}
			assert.Equal(t, tt.wantLoaded, got.Loaded)
			assert.Equal(t, tt.wantSkipped, got.Skipped)
		})
	}
}

func TestDB_MissingFilesLoadEmpty(t *testing.T) {
	db, _ := setup(t)
	reports, err := db.Load()
	require.NoError(t, err)
	require.Len(t, reports, 4)
	for _, r := range reports {
		assert.Equal(t, core.LoadReport{File: r.File}, r)
	}
}

func TestTable_RollbackOnSaveFailure(t *testing.T) {
	dir := t.TempDir()
	files := testFiles(filepath.Join(dir, "data"))
	db, err := Open(files, core.NewValidator(false), logsvc.NewNop())
	require.NoError(t, err)
	repo := NewSubjectRepository(db)

	first := subject.Subject{SubjectID: "SJ001", Name: "Algorithms", Credits: 5, Semester: 1}
	second := subject.Subject{SubjectID: "SJ002", Name: "Poetry", Credits: 3, Semester: 2}
	require.NoError(t, repo.Insert(first))
	require.NoError(t, repo.Insert(second))

	// replace the data directory with a plain file so every write fails
	require.NoError(t, os.RemoveAll(filepath.Join(dir, "data")))
	writeFile(t, filepath.Join(dir, "data"), "")

	assert.Error(t, repo.Insert(subject.Subject{SubjectID: "SJ003", Name: "Logic", Credits: 2, Semester: 3}))
	changed := first
	changed.Credits = 9
	ok, err := repo.Replace(changed)
	assert.Error(t, err)
	assert.False(t, ok)
	ok, err = repo.Remove("SJ001")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, repo.Reorder(func(a, b subject.Subject) bool { return a.SubjectID > b.SubjectID }))

	assert.Equal(t, []subject.Subject{first, second}, repo.All())
}

func TestTable_Reorder(t *testing.T) {
	db, files := setup(t)
	repo := NewStudentRepository(db)
	for _, id := range []string{"ST3", "ST1", "ST2"} {
		require.NoError(t, repo.Insert(student.Student{StudentID: id, Name: "Ivan", LastName: "Franko", Email: "i@uni.ua", Program: "CS"}))
	}
	require.NoError(t, repo.Reorder(func(a, b student.Student) bool { return a.StudentID < b.StudentID }))

	var ids []string
	for _, s := range repo.All() {
		ids = append(ids, s.StudentID)
	}
	assert.Equal(t, []string{"ST1", "ST2", "ST3"}, ids)
	assert.Equal(t, "Ivan,Franko,i@uni.ua,ST1,CS\nIvan,Franko,i@uni.ua,ST2,CS\nIvan,Franko,i@uni.ua,ST3,CS\n", readFile(t, files.Students))
}

func TestRelationStore(t *testing.T) {
	db, files := setup(t)
	store := NewRelationStore(db)

	rels := []assignment.Relation{
		{Kind: assignment.KindAssignment, OwnerID: "PR001", SubjectID: "SJ001"},
		{Kind: assignment.KindEnrollment, OwnerID: "ST1", SubjectID: "SJ001"},
	}
	require.NoError(t, store.SaveRelations(rels))
	assert.Equal(t, "T|PR001|SJ001\nS|ST1|SJ001\n", readFile(t, files.Assignments))

	got, report, err := store.LoadRelations()
	require.NoError(t, err)
	assert.Equal(t, rels, got)
	assert.Equal(t, core.LoadReport{File: files.Assignments, Loaded: 2}, report)

	writeFile(t, files.Assignments, "T|PR001|SJ001\nX|PR002|SJ002\nS|ST1\nS||SJ001\nS|ST1|SJ002\n")
	got, report, err = store.LoadRelations()
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 2, report.Loaded)
	assert.Equal(t, 3, report.Skipped)
}

func TestRelationStore_WithManager(t *testing.T) {
	db, files := setup(t)
	m := assignment.NewManager(NewRelationStore(db), logsvc.NewNop())

	require.NoError(t, m.AssignTeacher("PR001", "SJ001"))
	require.NoError(t, m.Enroll("ST1", "SJ001"))
	assert.Equal(t, "T|PR001|SJ001\nS|ST1|SJ001\n", readFile(t, files.Assignments))

	m2 := assignment.NewManager(NewRelationStore(db), logsvc.NewNop())
	report, err := m2.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, report.Loaded)
	assert.Equal(t, "SJ001", m2.TeachingStatus("PR001"))
	assert.True(t, m2.IsEnrolled("ST1", "SJ001"))
}
