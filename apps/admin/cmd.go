package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	dig_container "github.com/Vane487/kursovarobota/apps/di/dig"
	"github.com/Vane487/kursovarobota/core"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	app     dig_container.App
	reports []core.LoadReport
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  adduser -username USERNAME [-role ROLE] - create a user or update an existing one")
	fmt.Fprintln(cli.out, "  resetpassword -username USERNAME - reset user's password")
	fmt.Fprintln(cli.out, "  export [-out FILE] - write every record and relation to an .xlsx workbook")
	fmt.Fprintln(cli.out, "  import -in FILE - add students, teachers and subjects from an .xlsx workbook")
	fmt.Fprintln(cli.out, "  check - print load reports and orphaned relations")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserUname := addUserCmd.String("username", "", "The user's username. The password will be prompted next.")
	addUserRole := addUserCmd.String("role", "student", "One of student, teacher, admin.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The user's username. The password will be prompted next.")

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportOut := exportCmd.String("out", "roster.xlsx", "The workbook to write.")

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importIn := importCmd.String("in", "", "The workbook to read.")

	switch args[1] {
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserUname == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := cli.readPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserUname, pwd, *addUserRole)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.readPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordUname, pwd)
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.export(*exportOut)
	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importIn == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importRecords(*importIn)
	case "check":
		return cli.check()
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) readPassword() (string, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
