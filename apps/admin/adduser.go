package main

import (
	"fmt"

	"github.com/Vane487/kursovarobota/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(uname, pwd, roleName string) error {
	role, err := user.ParseRole(roleName)
	if err != nil {
		return err
	}

	if usr, ok := cli.app.Users.Get(uname); ok {
		if err := cli.app.Users.EditUser(usr.Username, pwd, role); err != nil {
			return err
		}
		cli.app.Logger.Info("user updated", "username", usr.Username, "role", string(role))
		fmt.Fprintf(cli.out, "updated %s\n", usr.Describe())
		return nil
	}

	if err := cli.app.Users.AddUser(uname, pwd, role); err != nil {
		return err
	}
	usr, _ := cli.app.Users.Get(uname)
	cli.app.Logger.Info("user created", "username", usr.Username, "role", string(role))
	fmt.Fprintf(cli.out, "created %s\n", usr.Describe())
	return nil
}
