package subject

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vane487/kursovarobota/core"
)

type memRepo struct {
	rows []Subject
}

func (r *memRepo) All() []Subject { return append([]Subject{}, r.rows...) }

func (r *memRepo) Get(id string) (Subject, bool) {
	for _, s := range r.rows {
		if s.SubjectID == id {
			return s, true
		}
	}
	return Subject{}, false
}

func (r *memRepo) Insert(s Subject) error {
	r.rows = append(r.rows, s)
	return nil
}

func (r *memRepo) Replace(s Subject) (bool, error) {
	for i := range r.rows {
		if r.rows[i].SubjectID == s.SubjectID {
			r.rows[i] = s
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) Remove(id string) (bool, error) {
	for i := range r.rows {
		if r.rows[i].SubjectID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) Reorder(less func(a, b Subject) bool) error {
	sort.SliceStable(r.rows, func(i, j int) bool { return less(r.rows[i], r.rows[j]) })
	return nil
}

func setup(t *testing.T) *Service {
	t.Helper()
	require.NoError(t, core.SetupLocale("uk"))
	svc := NewService(new(memRepo), core.NewValidator(false))
	for _, s := range []Subject{
		{SubjectID: "SJ003", Name: "Математичний аналіз", Credits: 6, Semester: 1},
		{SubjectID: "SJ001", Name: "Алгоритми", Credits: 5, Semester: 2, TeacherID: "PR001"},
		{SubjectID: "SJ002", Name: "Бази даних", Credits: 4, Semester: 2},
	} {
		require.NoError(t, svc.Add(s))
	}
	return svc
}

func ids(subjects []Subject) []string {
	out := make([]string, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, s.SubjectID)
	}
	return out
}

func TestService_AddValidation(t *testing.T) {
	svc := setup(t)

	tests := []struct {
		name    string
		subject Subject
		wantOK  bool
	}{
		{name: "bounds low", subject: Subject{SubjectID: "SJ010", Name: "Logic", Credits: 1, Semester: 1}, wantOK: true},
		{name: "bounds high", subject: Subject{SubjectID: "SJ011", Name: "Logic", Credits: 10, Semester: 8}, wantOK: true},
		{name: "zero credits", subject: Subject{SubjectID: "SJ012", Name: "Logic", Credits: 0, Semester: 1}},
		{name: "too many credits", subject: Subject{SubjectID: "SJ013", Name: "Logic", Credits: 11, Semester: 1}},
		{name: "semester nine", subject: Subject{SubjectID: "SJ014", Name: "Logic", Credits: 3, Semester: 9}},
		{name: "no name", subject: Subject{SubjectID: "SJ015", Credits: 3, Semester: 1}},
		{name: "pipe in name", subject: Subject{SubjectID: "SJ016", Name: "A|B", Credits: 3, Semester: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Add(tt.subject)
			if tt.wantOK {
				assert.NoError(t, err)
				return
			}
			assert.True(t, core.IsValidation(err), "error = %v", err)
		})
	}

	err := svc.Add(Subject{SubjectID: "SJ001", Name: "Logic", Credits: 3, Semester: 1})
	assert.ErrorIs(t, err, ErrIDExists)
}

func TestService_EditKeepsTeacher(t *testing.T) {
	svc := setup(t)

	require.NoError(t, svc.Edit("SJ001", Subject{SubjectID: "SJ001", Name: "Алгоритми і структури даних", Credits: 6, Semester: 3, TeacherID: "PR999"}))
	got, _ := svc.Get("SJ001")
	assert.Equal(t, "PR001", got.TeacherID)
	assert.Equal(t, 6, got.Credits)

	assert.ErrorIs(t, svc.Edit("SJ404", Subject{SubjectID: "SJ404", Name: "X", Credits: 1, Semester: 1}), ErrNotFound)
	assert.ErrorIs(t, svc.Edit("SJ001", Subject{SubjectID: "SJ002", Name: "X", Credits: 1, Semester: 1}), ErrIDMismatch)

	require.NoError(t, svc.SetTeacher("SJ001", ""))
	got, _ = svc.Get("SJ001")
	assert.False(t, got.HasTeacher())
	assert.ErrorIs(t, svc.SetTeacher("SJ404", "PR001"), ErrNotFound)
}

func TestService_Lookups(t *testing.T) {
	svc := setup(t)

	name, ok := svc.Name("SJ002")
	assert.True(t, ok)
	assert.Equal(t, "Бази даних", name)

	s, ok := svc.BoundTo("PR001")
	assert.True(t, ok)
	assert.Equal(t, "SJ001", s.SubjectID)
	_, ok = svc.BoundTo("")
	assert.False(t, ok)
}

func TestService_SearchFilterSort(t *testing.T) {
	svc := setup(t)

	assert.Equal(t, []string{"SJ002"}, ids(svc.SearchByName("БАЗИ")))
	assert.Equal(t, []string{"SJ001", "SJ002"}, ids(svc.FilterBySemester(2)))
	assert.Equal(t, []string{"SJ001", "SJ002"}, ids(svc.FilterByCredits(4, 5)))
	assert.Equal(t, []string{"SJ003"}, ids(svc.FilterByCredits(6, 6)))
	assert.Empty(t, svc.FilterByCredits(7, 10))

	require.NoError(t, svc.SortByName(true))
	assert.Equal(t, []string{"SJ001", "SJ002", "SJ003"}, svc.IDs())
	require.NoError(t, svc.SortByName(false))
	assert.Equal(t, []string{"SJ003", "SJ002", "SJ001"}, svc.IDs())
	require.NoError(t, svc.SortByID(true))
	assert.Equal(t, []string{"SJ001", "SJ002", "SJ003"}, svc.IDs())
}

func TestFromRecord(t *testing.T) {
	s, err := FromRecord([]string{"SJ001", "Algorithms", " 5", "", "2"})
	require.NoError(t, err)
	assert.Equal(t, Subject{SubjectID: "SJ001", Name: "Algorithms", Credits: 5, Semester: 2}, s)
	assert.Equal(t, []string{"SJ001", "Algorithms", "5", "", "2"}, s.Record())

	_, err = FromRecord([]string{"SJ001", "Algorithms", "five", "", "2"})
	assert.Error(t, err)
	_, err = FromRecord([]string{"SJ001"})
	assert.Error(t, err)
}
