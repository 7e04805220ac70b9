package main

import (
	"fmt"
	"os"

	dig_container "github.com/Vane487/kursovarobota/apps/di/dig"
	"github.com/Vane487/kursovarobota/core"
)

func main() {
	conf, err := core.NewConfig(".")
	errAndDie(err)
	errAndDie(core.SetupLocale(conf.Locale))

	app, err := dig_container.Build(conf)
	errAndDie(err)

	reports, err := app.Load()
	errAndDie(err)

	// start CLI
	cli := commandLine{
		app:     app,
		reports: reports,
		out:     os.Stdout,
	}
	err = cli.run(os.Args)
	_ = app.ZapLogger.Sync()
	if err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
