package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	exportsvc "github.com/Vane487/kursovarobota/services/export"
)

func (cli *commandLine) export(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = errors.Wrapf(cErr, "closing %s", path)
		}
	}()

	roster := cli.app.Registry.Roster()
	if err := exportsvc.Roster(f, roster); err != nil {
		return err
	}
	cli.app.Logger.Info("roster exported", "file", path)
	fmt.Fprintf(cli.out, "exported %d students, %d teachers, %d subjects to %s\n",
		len(roster.Students), len(roster.Teachers), len(roster.Subjects), path)
	return nil
}

// importRecords adds the workbook's students, teachers and subjects. Records that fail
// validation or already exist are reported and skipped; the rest are kept.
func (cli *commandLine) importRecords(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	//goland:noinspection GoUnhandledErrorResult
	defer f.Close()

	recs, rowErrs, err := exportsvc.ReadRecords(f)
	if err != nil {
		return err
	}
	for _, rowErr := range rowErrs {
		fmt.Fprintf(cli.out, "skipped %s\n", rowErr)
	}

	var added, skipped int
	tally := func(id string, err error) {
		if err != nil {
			skipped++
			fmt.Fprintf(cli.out, "skipped %s: %s\n", id, err)
			return
		}
		added++
	}
	reg := cli.app.Registry
	for _, s := range recs.Students {
		tally(s.StudentID, reg.Students.Add(s))
	}
	for _, t := range recs.Teachers {
		tally(t.TeacherID, reg.Teachers.Add(t))
	}
	for _, s := range recs.Subjects {
		tally(s.SubjectID, reg.AddSubject(s))
	}

	cli.app.Logger.Info("records imported", "file", path, "added", added, "skipped", skipped+len(rowErrs))
	fmt.Fprintf(cli.out, "imported %d records, skipped %d\n", added, skipped+len(rowErrs))
	return nil
}
