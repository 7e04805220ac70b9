// Package exportsvc writes the records to a spreadsheet workbook and reads them back.
package exportsvc

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/Vane487/kursovarobota/core/registry"
)

// Sheet names, in workbook order.
const (
	SheetStudents    = "Students"
	SheetTeachers    = "Teachers"
	SheetSubjects    = "Subjects"
	SheetAssignments = "Assignments"
	SheetEnrollments = "Enrollments"
)

var (
	studentHeader    = []string{"Student ID", "Name", "Last name", "Email", "Program"}
	teacherHeader    = []string{"Teacher ID", "Name", "Last name", "Email", "Department", "Degree"}
	subjectHeader    = []string{"Subject ID", "Name", "ECTS credits", "Semester", "Teacher ID"}
	assignmentHeader = []string{"Teacher ID", "Teacher", "Subject ID", "Subject"}
	enrollmentHeader = []string{"Student ID", "Student", "Subject ID", "Subject"}
)

type sheet struct {
	name   string
	header []string
	rows   [][]interface{}
	widths []float64
}

// Roster writes roster as an .xlsx workbook to w, one sheet per record kind.
func Roster(w io.Writer, roster registry.Roster) error {
	f := excelize.NewFile()
	//goland:noinspection GoUnhandledErrorResult
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return errors.Wrap(err, "creating header style")
	}

	for i, sh := range rosterSheets(roster) {
		idx, err := f.NewSheet(sh.name)
		if err != nil {
			return errors.Wrapf(err, "creating sheet %s", sh.name)
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}
		if err := writeSheet(f, sh, headerStyle); err != nil {
			return errors.Wrapf(err, "writing sheet %s", sh.name)
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.Wrap(err, "removing default sheet")
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return nil
}

func rosterSheets(roster registry.Roster) []sheet {
	students := sheet{name: SheetStudents, header: studentHeader, widths: []float64{12, 16, 18, 28, 28}}
	for _, s := range roster.Students {
		students.rows = append(students.rows, []interface{}{s.StudentID, s.Name, s.LastName, s.Email, s.Program})
	}

	teachers := sheet{name: SheetTeachers, header: teacherHeader, widths: []float64{12, 16, 18, 28, 24, 12}}
	for _, t := range roster.Teachers {
		teachers.rows = append(teachers.rows, []interface{}{t.TeacherID, t.Name, t.LastName, t.Email, t.Department, t.Degree.String()})
	}

	subjects := sheet{name: SheetSubjects, header: subjectHeader, widths: []float64{12, 32, 14, 10, 12}}
	for _, s := range roster.Subjects {
		subjects.rows = append(subjects.rows, []interface{}{s.SubjectID, s.Name, s.Credits, s.Semester, s.TeacherID})
	}

	assignments := sheet{name: SheetAssignments, header: assignmentHeader, widths: []float64{12, 28, 12, 32}}
	for _, a := range roster.Assignments {
		assignments.rows = append(assignments.rows, []interface{}{a.TeacherID, a.TeacherName, a.SubjectID, a.SubjectName})
	}

	enrollments := sheet{name: SheetEnrollments, header: enrollmentHeader, widths: []float64{12, 28, 12, 32}}
	for _, e := range roster.Enrollments {
		enrollments.rows = append(enrollments.rows, []interface{}{e.StudentID, e.StudentName, e.SubjectID, e.SubjectName})
	}

	return []sheet{students, teachers, subjects, assignments, enrollments}
}

func writeSheet(f *excelize.File, sh sheet, headerStyle int) error {
	for i, width := range sh.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sh.name, col, col, width); err != nil {
			return err
		}
	}

	header := make([]interface{}, 0, len(sh.header))
	for _, h := range sh.header {
		header = append(header, h)
	}
	if err := f.SetSheetRow(sh.name, "A1", &header); err != nil {
		return err
	}
	lastCol, err := excelize.CoordinatesToCellName(len(sh.header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sh.name, "A1", lastCol, headerStyle); err != nil {
		return err
	}
	if err := f.SetPanes(sh.name, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}

	for i, row := range sh.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
