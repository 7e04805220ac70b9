package exportsvc

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/Vane487/kursovarobota/core"
	"github.com/Vane487/kursovarobota/core/student"
	"github.com/Vane487/kursovarobota/core/subject"
	"github.com/Vane487/kursovarobota/core/teacher"
)

// Records are the entity rows read from a workbook. Relations are not imported.
type Records struct {
	Students []student.Student
	Teachers []teacher.Teacher
	Subjects []subject.Subject
}

// RowError points at a workbook row that could not be read.
type RowError struct {
	Sheet string
	Row   int
	Err   error
}

func (e RowError) Error() string {
	return fmt.Sprintf("%s row %d: %v", e.Sheet, e.Row, e.Err)
}

// ReadRecords reads the Students, Teachers and Subjects sheets of a workbook laid out like Roster's.
// Missing sheets read as empty. Unreadable rows are returned as RowErrors; field validation is left to the caller.
func ReadRecords(r io.Reader) (Records, []RowError, error) {
	var recs Records
	var rowErrs []RowError

	f, err := excelize.OpenReader(r)
	if err != nil {
		return recs, nil, errors.Wrap(err, "opening workbook")
	}
	//goland:noinspection GoUnhandledErrorResult
	defer f.Close()

	read := func(name string, width int, fn func(cells []string) error) error {
		if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
			return nil
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return errors.Wrapf(err, "reading sheet %s", name)
		}
		for i, row := range rows {
			if i == 0 || isBlank(row) { // header
				continue
			}
			cells := make([]string, width)
			copy(cells, row)
			for j := range cells {
				cells[j] = core.CleanString(cells[j])
			}
			if err := fn(cells); err != nil {
				rowErrs = append(rowErrs, RowError{Sheet: name, Row: i + 1, Err: err})
			}
		}
		return nil
	}

	err = read(SheetStudents, len(studentHeader), func(c []string) error {
		recs.Students = append(recs.Students, student.Student{
			StudentID: c[0], Name: c[1], LastName: c[2], Email: c[3], Program: c[4],
		})
		return nil
	})
	if err != nil {
		return recs, rowErrs, err
	}

	err = read(SheetTeachers, len(teacherHeader), func(c []string) error {
		degree, err := teacher.ParseDegree(c[5])
		if err != nil {
			return err
		}
		recs.Teachers = append(recs.Teachers, teacher.Teacher{
			TeacherID: c[0], Name: c[1], LastName: c[2], Email: c[3], Department: c[4], Degree: degree,
		})
		return nil
	})
	if err != nil {
		return recs, rowErrs, err
	}

	err = read(SheetSubjects, len(subjectHeader), func(c []string) error {
		credits, err := strconv.Atoi(c[2])
		if err != nil {
			return errors.Wrap(err, "credits")
		}
		semester, err := strconv.Atoi(c[3])
		if err != nil {
			return errors.Wrap(err, "semester")
		}
		recs.Subjects = append(recs.Subjects, subject.Subject{
			SubjectID: c[0], Name: c[1], Credits: credits, Semester: semester, TeacherID: c[4],
		})
		return nil
	})
	return recs, rowErrs, err
}

func isBlank(row []string) bool {
	for _, c := range row {
		if core.CleanString(c) != "" {
			return false
		}
	}
	return true
}
