package core

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID      string `json:"id" validate:"required,alphanum,strictid=PR"`
	Name    string `json:"name" validate:"required,min=2,max=50,personname"`
	Program string `json:"program" validate:"required,nodelim"`
	Skipped string `json:"-"`
}

func TestValidator_Struct(t *testing.T) {
	lax := NewValidator(false)
	strict := NewValidator(true)

	tests := []struct {
		name       string
		validator  *Validator
		rec        record
		wantFields []string
	}{
		{name: "valid", validator: lax, rec: record{ID: "S1", Name: "Олена", Program: "Computer Science"}},
		{name: "hyphen and apostrophe", validator: lax, rec: record{ID: "S1", Name: "Anne-Marie O'Neil", Program: "CS"}},
		{name: "missing fields", validator: lax, rec: record{}, wantFields: []string{"id", "name", "program"}},
		{name: "digit in name", validator: lax, rec: record{ID: "S1", Name: "R2D2", Program: "CS"}, wantFields: []string{"name"}},
		{name: "one letter name", validator: lax, rec: record{ID: "S1", Name: "Я", Program: "CS"}, wantFields: []string{"name"}},
		{name: "non alphanumeric id", validator: lax, rec: record{ID: "S-1", Name: "Ivan", Program: "CS"}, wantFields: []string{"id"}},
		{name: "delimiter in program", validator: lax, rec: record{ID: "S1", Name: "Ivan", Program: "CS|Math"}, wantFields: []string{"program"}},
		{name: "blank program", validator: lax, rec: record{ID: "S1", Name: "Ivan", Program: "   "}, wantFields: []string{"program"}},
		{name: "lax mode ignores id convention", validator: lax, rec: record{ID: "T7", Name: "Ivan", Program: "CS"}},
		{name: "strict mode rejects id", validator: strict, rec: record{ID: "T7", Name: "Ivan", Program: "CS"}, wantFields: []string{"id"}},
		{name: "strict mode accepts id", validator: strict, rec: record{ID: "PR001", Name: "Ivan", Program: "CS"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validator.Struct(tt.rec)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsValidation(err))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			got := make([]string, 0, len(verr.Fields))
			for _, fld := range verr.Fields {
				got = append(got, fld.Field)
				assert.NotEmpty(t, fld.Error)
			}
			assert.ElementsMatch(t, tt.wantFields, got)
		})
	}
}

func TestValidator_StrictIDMessage(t *testing.T) {
	err := NewValidator(true).Struct(record{ID: "X1", Name: "Ivan", Program: "CS"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PR000")
}

func TestErrorKinds(t *testing.T) {
	errDup := errors.New("duplicate")
	conflict := errors.Wrap(NewConflictError(errDup, "student", "S1"), "adding")

	assert.True(t, IsConflict(conflict))
	assert.False(t, IsValidation(conflict))
	assert.True(t, errors.Is(conflict, errDup))
	assert.Contains(t, conflict.Error(), `student "S1": duplicate`)

	valErr := NewValidationError(nil, FieldError{Field: "email", Error: "email must be a valid email address"})
	assert.True(t, IsValidation(valErr))
	assert.Equal(t, "email: email must be a valid email address", valErr.Error())
}

func TestLocale(t *testing.T) {
	require.NoError(t, SetupLocale("uk"))
	defer func() { _ = SetupLocale("uk") }()

	assert.True(t, ContainsFold("Шевченко Тарас", "ШЕВЧ"))
	assert.True(t, ContainsFold("Computer Science", " science "))
	assert.False(t, ContainsFold("Math", "physics"))

	names := []string{"Юрій", "андрій", "Ігор", "Борис"}
	coll := NewCollator()
	sort.SliceStable(names, func(i, j int) bool { return coll.CompareString(names[i], names[j]) < 0 })
	assert.Equal(t, []string{"андрій", "Борис", "Ігор", "Юрій"}, names)

	assert.Error(t, SetupLocale("not a locale!"))
}

func TestNewConfig(t *testing.T) {
	t.Setenv("ENV", "TEST")
	t.Setenv("TEST_DATA_DIR", "/tmp/records")
	t.Setenv("TEST_STRICT_IDS", "true")

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	dotEnv := "TEST_LOG_LEVEL=debug\nTEST_MAX_SUBJECTS_PER_STUDENT=3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", ".env.test"), []byte(dotEnv), 0o644))

	conf, err := NewConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "TEST", conf.Env)
	assert.False(t, conf.Debug)
	assert.Equal(t, "/tmp/records", conf.Data.Dir)
	assert.Equal(t, filepath.Join("/tmp/records", "students.csv"), conf.Data.StudentsFile)
	assert.Equal(t, filepath.Join("/tmp/records", "assignments.txt"), conf.Data.AssignmentsFile)
	assert.True(t, conf.StrictIDs)
	assert.Equal(t, "debug", conf.Log.Level)
	assert.Equal(t, "console", conf.Log.Format)
	assert.Equal(t, "uk", conf.Locale)
	assert.Equal(t, "admin123", conf.Auth.AdminPassword)
	assert.Equal(t, "plain", conf.Auth.Hasher)
	assert.Equal(t, 3, conf.Enrollment.MaxSubjects)

	// godotenv does not override, so clean up what it set
	_ = os.Unsetenv("TEST_LOG_LEVEL")
	_ = os.Unsetenv("TEST_MAX_SUBJECTS_PER_STUDENT")
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Ivan", CleanString("  Ivan \t"))
	assert.Equal(t, "ivan", CleanString(" IVAN ", true))
}
