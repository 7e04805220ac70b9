package main

import "fmt"

// check prints what was loaded at start-up and any relation that points at a missing record.
func (cli *commandLine) check() error {
	for _, r := range cli.reports {
		fmt.Fprintln(cli.out, r)
	}

	orphans := cli.app.Registry.Orphans()
	if len(orphans) == 0 {
		fmt.Fprintln(cli.out, "no orphaned relations")
		return nil
	}
	fmt.Fprintf(cli.out, "%d orphaned relations:\n", len(orphans))
	for _, o := range orphans {
		fmt.Fprintf(cli.out, "  %s\n", o)
	}
	return nil
}
