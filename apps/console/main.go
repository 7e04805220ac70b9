package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	dig_container "github.com/Vane487/kursovarobota/apps/di/dig"
	"github.com/Vane487/kursovarobota/core"
)

func main() {
	fd := -1
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fd = int(os.Stdin.Fd())
	}
	if err := run(".", os.Stdin, os.Stdout, fd); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

// run wires the application from the config found under workDir and serves the menu on in/out.
// Only start-up failures are returned; load problems are logged and the session goes on.
func run(workDir string, in io.Reader, out io.Writer, passwordFd int) error {
	conf, err := core.NewConfig(workDir)
	if err != nil {
		return err
	}
	if err := core.SetupLocale(conf.Locale); err != nil {
		return err
	}

	app, err := dig_container.Build(conf)
	if err != nil {
		return err
	}
	//goland:noinspection GoUnhandledErrorResult
	defer app.ZapLogger.Sync()

	if _, err := app.Load(); err != nil {
		app.Logger.Error("loading data", err)
	}

	return newConsole(in, out, app, passwordFd).run()
}
