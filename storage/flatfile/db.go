// Package flatfile keeps every record in memory and mirrors each change to delimited text files.
package flatfile

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/Vane487/kursovarobota/core"
	"github.com/Vane487/kursovarobota/core/student"
	"github.com/Vane487/kursovarobota/core/subject"
	"github.com/Vane487/kursovarobota/core/teacher"
	"github.com/Vane487/kursovarobota/core/user"
)

// Field separators per file.
const (
	entityComma   = ','
	userComma     = ':'
	relationComma = '|'
)

// Files names the data file of each record kind.
type Files struct {
	Students    string
	Teachers    string
	Subjects    string
	Users       string
	Assignments string
}

func FilesFromConfig(conf *core.Config) Files {
	return Files{
		Students:    conf.Data.StudentsFile,
		Teachers:    conf.Data.TeachersFile,
		Subjects:    conf.Data.SubjectsFile,
		Users:       conf.Data.UsersFile,
		Assignments: conf.Data.AssignmentsFile,
	}
}

type DB struct {
	files Files
	log   core.Logger

	student *table[student.Student]
	teacher *table[teacher.Teacher]
	subject *table[subject.Subject]
	user    *table[user.User]
}

// Open prepares the tables and creates the data directories. Nothing is read until Load.
// Records failing validate are skipped while loading.
func Open(files Files, validate *core.Validator, logger core.Logger) (*DB, error) {
	for _, path := range []string{files.Students, files.Teachers, files.Subjects, files.Users, files.Assignments} {
		if path == "" {
			return nil, errors.New("data file path is empty")
		}
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "creating data directory %s", dir)
		}
	}
	teacher.InitValidators(validate)

	db := &DB{
		files: files,
		log:   logger,
		student: &table[student.Student]{
			path:   files.Students,
			comma:  entityComma,
			key:    func(s student.Student) string { return s.StudentID },
			encode: student.Student.Record,
			decode: student.FromRecord,
			check:  func(s student.Student) error { return validate.Struct(s) },
			log:    logger,
		},
		teacher: &table[teacher.Teacher]{
			path:   files.Teachers,
			comma:  entityComma,
			key:    func(t teacher.Teacher) string { return t.TeacherID },
			encode: teacher.Teacher.Record,
			decode: teacher.FromRecord,
			check:  func(t teacher.Teacher) error { return validate.Struct(t) },
			log:    logger,
		},
		subject: &table[subject.Subject]{
			path:   files.Subjects,
			comma:  entityComma,
			key:    func(s subject.Subject) string { return s.SubjectID },
			encode: subject.Subject.Record,
			decode: subject.FromRecord,
			check:  func(s subject.Subject) error { return validate.Struct(s) },
			log:    logger,
		},
		user: &table[user.User]{
			path:   files.Users,
			comma:  userComma,
			key:    func(u user.User) string { return u.Username },
			encode: user.User.Record,
			decode: user.FromRecord,
			log:    logger,
		},
	}
	return db, nil
}

func (db *DB) Files() Files {
	return db.files
}

// Load reads the entity and user files. The relations file is read by the assignment manager.
func (db *DB) Load() ([]core.LoadReport, error) {
	loaders := []func() (core.LoadReport, error){
		db.student.load,
		db.teacher.load,
		db.subject.load,
		db.user.load,
	}
	reports := make([]core.LoadReport, 0, len(loaders))
	for _, load := range loaders {
		report, err := load()
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// Save rewrites every entity and user file from memory.
func (db *DB) Save() error {
	for _, persist := range []func() error{
		db.student.persist,
		db.teacher.persist,
		db.subject.persist,
		db.user.persist,
	} {
		if err := persist(); err != nil {
			return err
		}
	}
	return nil
}

// Clear empties every table in memory. Files are left alone.
func (db *DB) Clear() {
	db.student.clear()
	db.teacher.clear()
	db.subject.clear()
	db.user.clear()
}
