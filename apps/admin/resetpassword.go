package main

func (cli *commandLine) resetPassword(uname, pwd string) error {
	if err := cli.app.Users.SetPassword(uname, pwd); err != nil {
		return err
	}
	cli.app.Logger.Info("password reset", "username", uname)
	return nil
}
