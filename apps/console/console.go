package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/term"

	dig_container "github.com/Vane487/kursovarobota/apps/di/dig"
	"github.com/Vane487/kursovarobota/core"
	"github.com/Vane487/kursovarobota/core/registry"
	"github.com/Vane487/kursovarobota/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errExit   = errors.New("exit requested")
	errLogout = errors.New("logout requested")
)

type menuItem struct {
	label  string
	admin  bool
	action func() error
}

type console struct {
	in         *bufio.Scanner
	out        io.Writer
	passwordFd int // -1 reads passwords as plain lines

	app dig_container.App
	reg *registry.Registry
	log core.Logger

	usr      user.User
	loggedIn bool
}

func newConsole(in io.Reader, out io.Writer, app dig_container.App, passwordFd int) *console {
	return &console{
		in:         bufio.NewScanner(in),
		out:        out,
		passwordFd: passwordFd,
		app:        app,
		reg:        app.Registry,
		log:        app.Logger,
	}
}

// run serves the welcome menu until the user exits or the input ends.
func (c *console) run() error {
	err := c.menu("СИСТЕМА УПРАВЛІННЯ УНІВЕРСИТЕТОМ", "", []menuItem{
		{label: "Увійти в систему", action: c.login},
		{label: "Допомога", action: c.help},
		{label: "Вихід", action: func() error { return errExit }},
	})
	if err == nil || errors.Is(err, errExit) || errors.Is(err, io.EOF) {
		c.println("До побачення!")
		return nil
	}
	return err
}

func (c *console) login() error {
	uname, err := c.prompt("Ім'я користувача: ")
	if err != nil {
		return err
	}
	pwd, err := c.password("Пароль: ")
	if err != nil {
		return err
	}

	usr, err := c.app.Users.Authenticate(uname, pwd)
	if err != nil {
		c.log.Warn("login failed", "username", uname)
		c.println("Невірне ім'я користувача або пароль.")
		return nil
	}

	c.usr, c.loggedIn = usr, true
	c.log = c.app.ZapLogger.With("session", uuid.NewString(), usr)
	c.log.Info("logged in")
	c.printf("Ласкаво просимо, %s!\n", usr.Username)

	err = c.mainMenu()
	c.log.Info("logged out")
	c.usr, c.loggedIn, c.log = user.User{}, false, c.app.Logger
	if errors.Is(err, errLogout) {
		c.println("Вихід виконано успішно.")
		return nil
	}
	return err
}

func (c *console) mainMenu() error {
	title := func() string {
		return fmt.Sprintf("ГОЛОВНЕ МЕНЮ (%s | %s)", c.usr.Username, c.usr.Role.Label())
	}
	return c.menu(title(), "", []menuItem{
		{label: "Користувачі", admin: true, action: c.usersMenu},
		{label: "Студенти", action: c.studentsMenu},
		{label: "Викладачі", action: c.teachersMenu},
		{label: "Предмети", action: c.subjectsMenu},
		{label: "Призначення та записи", action: c.assignmentsMenu},
		{label: "Пошук, фільтрація та сортування", action: c.searchMenu},
		{label: "Допомога", action: c.help},
		{label: "Вийти з облікового запису", action: func() error { return errLogout }},
	})
}

func (c *console) help() error {
	c.println(`=== ДОПОМОГА ===
Це консольна система обліку університету.
Оберіть пункт меню, ввівши його номер.

Права доступу:
- Адміністратор: повний доступ
- Викладач: перегляд та пошук
- Студент: перегляд та пошук`)
	return nil
}

// menu shows items until back (item 0) is chosen or an action returns one of the
// control errors: errExit, errLogout or io.EOF. An empty back hides item 0.
func (c *console) menu(title, back string, items []menuItem) error {
	for {
		c.printf("\n=== %s ===\n", title)
		for i, it := range items {
			lock := ""
			if it.admin && !c.isAdmin() {
				lock = " [лише адміністратор]"
			}
			c.printf("%d. %s%s\n", i+1, it.label, lock)
		}
		if back != "" {
			c.printf("0. %s\n", back)
		}

		choice, err := c.prompt("Оберіть опцію: ")
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(choice)
		switch {
		case err != nil || n < 0 || n > len(items) || (n == 0 && back == ""):
			c.println("Невірний вибір. Спробуйте ще раз.")
			continue
		case n == 0:
			return nil
		}

		it := items[n-1]
		if it.admin && !c.isAdmin() {
			c.log.Warn("access denied", "action", it.label)
			c.println("Доступ заборонено: дія доступна лише адміністратору.")
			continue
		}
		if err := it.action(); err != nil {
			if errors.Is(err, errExit) || errors.Is(err, errLogout) || errors.Is(err, io.EOF) {
				return err
			}
			c.fail(err)
		}
	}
}

func (c *console) isAdmin() bool {
	return c.loggedIn && c.usr.Role.AtLeast(user.RoleAdmin)
}

func (c *console) prompt(label string) (string, error) {
	c.printf("%s", label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", errors.Wrap(err, "reading input")
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// field prompts for a value; an empty answer keeps current.
func (c *console) field(label, current string) (string, error) {
	if current == "" {
		return c.prompt(label + ": ")
	}
	v, err := c.prompt(fmt.Sprintf("%s [%s]: ", label, current))
	if err != nil || v != "" {
		return v, err
	}
	return current, nil
}

func (c *console) intField(label string, current int) (int, error) {
	cur := ""
	if current != 0 {
		cur = strconv.Itoa(current)
	}
	v, err := c.field(label, cur)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, core.NewValidationError(errors.Errorf("%q is not a number", v))
	}
	return n, nil
}

func (c *console) password(label string) (string, error) {
	if c.passwordFd < 0 {
		return c.prompt(label)
	}
	c.printf("%s", label)
	pwd, err := readPasswordFunc(c.passwordFd)
	c.println()
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	return string(pwd), nil
}

// ascending asks for a sort order: 1 ascending, anything else descending.
func (c *console) ascending() (bool, error) {
	v, err := c.prompt("Порядок сортування (1 - за зростанням, 2 - за спаданням): ")
	return v == "1", err
}

var notFoundKinds = map[registry.Kind]error{
	registry.KindStudent: registry.ErrStudentNotFound,
	registry.KindTeacher: registry.ErrTeacherNotFound,
	registry.KindSubject: registry.ErrSubjectNotFound,
}

type ref struct {
	kind registry.Kind
	id   string
}

// done prints ok on success. On failure it prints the error and, for unknown IDs among refs,
// the closest existing ones.
func (c *console) done(err error, ok string, refs ...ref) error {
	if err == nil {
		c.println(ok)
		return nil
	}
	if errors.Is(err, io.EOF) {
		return err
	}
	c.fail(err)
	for _, r := range refs {
		if errors.Is(err, notFoundKinds[r.kind]) {
			c.suggest(r)
		}
	}
	return nil
}

func (c *console) missing(r ref) {
	c.printf("Помилка: запис з ID %s не знайдено.\n", r.id)
	c.suggest(r)
}

func (c *console) suggest(r ref) {
	if ids := c.reg.Suggest(r.kind, r.id); len(ids) > 0 {
		c.printf("Можливо, ви мали на увазі: %s\n", strings.Join(ids, ", "))
	}
}

// fail prints a labelled error. Validation errors list each field on its own line.
func (c *console) fail(err error) {
	c.log.Debug("operation failed", err)

	var vErr *core.ValidationError
	if errors.As(err, &vErr) && len(vErr.Fields) > 0 {
		c.println("ПОМИЛКА ВАЛІДАЦІЇ:")
		for _, f := range vErr.Fields {
			c.printf(" - %s: %s\n", f.Field, f.Error)
		}
		return
	}
	c.printf("ПОМИЛКА: %s\n", err)
}

func (c *console) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func (c *console) println(args ...interface{}) {
	_, _ = fmt.Fprintln(c.out, args...)
}

func list[T core.Displayable](c *console, title, empty string, items []T) {
	c.printf("\n=== %s ===\n", title)
	if len(items) == 0 {
		c.println(empty)
		return
	}
	for _, it := range items {
		c.println(it.Describe())
	}
	c.printf("Всього: %d\n", len(items))
}
