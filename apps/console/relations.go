package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Vane487/kursovarobota/core/registry"
	"github.com/Vane487/kursovarobota/core/user"
)

// Users

func (c *console) usersMenu() error {
	return c.menu("КОРИСТУВАЧІ", back, []menuItem{
		{label: "Переглянути всіх", admin: true, action: c.listUsers},
		{label: "Додати", admin: true, action: c.addUser},
		{label: "Редагувати", admin: true, action: c.editUser},
		{label: "Видалити", admin: true, action: c.removeUser},
		{label: "Знайти", admin: true, action: c.findUser},
	})
}

func (c *console) listUsers() error {
	users := c.app.Users.List()
	c.println("\n=== КОРИСТУВАЧІ ===")
	w := c.table("Користувач", "Роль")
	for _, u := range users {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", u.Username, u.Role.Label())
	}
	_ = w.Flush()
	c.printf("Всього: %d\n", len(users))
	return nil
}

// readRole accepts a menu number or a role name; an empty answer keeps current.
func (c *console) readRole(current user.Role) (user.Role, error) {
	cur := ""
	if current != "" {
		cur = current.Label()
	}
	v, err := c.field("Роль (1 - Студент, 2 - Викладач, 3 - Адміністратор)", cur)
	if err != nil {
		return "", err
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= len(user.Roles) {
		return user.Roles[n-1], nil
	}
	return user.ParseRole(v)
}

func (c *console) addUser() error {
	uname, err := c.prompt("Ім'я користувача: ")
	if err != nil {
		return err
	}
	pwd, err := c.password("Пароль: ")
	if err != nil {
		return err
	}
	role, err := c.readRole("")
	if err != nil {
		return err
	}
	if err := c.app.Users.AddUser(uname, pwd, role); err != nil {
		return err
	}
	c.log.Info("user added", "username", uname, "role", string(role))
	c.println("Користувача додано.")
	return nil
}

func (c *console) editUser() error {
	uname, err := c.prompt("Ім'я користувача: ")
	if err != nil {
		return err
	}
	usr, ok := c.app.Users.Get(uname)
	if !ok {
		c.println("Користувача не знайдено.")
		return nil
	}
	pwd, err := c.password("Новий пароль (порожньо - без змін): ")
	if err != nil {
		return err
	}
	role, err := c.readRole(usr.Role)
	if err != nil {
		return err
	}
	if err := c.app.Users.EditUser(usr.Username, pwd, role); err != nil {
		return err
	}
	c.log.Info("user edited", "username", usr.Username, "role", string(role))
	c.println("Дані користувача оновлено.")
	return nil
}

func (c *console) removeUser() error {
	uname, err := c.prompt("Ім'я користувача: ")
	if err != nil {
		return err
	}
	if err := c.app.Users.RemoveUser(uname); err != nil {
		return err
	}
	c.log.Info("user removed", "username", uname)
	c.println("Користувача видалено.")
	return nil
}

func (c *console) findUser() error {
	uname, err := c.prompt("Ім'я користувача: ")
	if err != nil {
		return err
	}
	usr, ok := c.app.Users.Get(uname)
	if !ok {
		c.println("Користувача не знайдено.")
		return nil
	}
	c.printf("%s - %s\n", usr.Username, usr.Role.Label())
	return nil
}

// Assignments and enrollments

func (c *console) assignmentsMenu() error {
	return c.menu("ПРИЗНАЧЕННЯ НА ПРЕДМЕТИ", back, []menuItem{
		{label: "Призначити викладача на предмет", admin: true, action: c.assignTeacher},
		{label: "Видалити призначення", admin: true, action: c.removeAssignment},
		{label: "Переглянути всі призначення", action: c.listAssignments},
		{label: "Перевірити статус викладача", action: c.teacherStatus},
		{label: "Записати студента на предмет", admin: true, action: c.enroll},
		{label: "Видалити студента з предмету", admin: true, action: c.unenroll},
		{label: "Переглянути записи студентів", action: c.listEnrollments},
	})
}

func (c *console) twoIDs(first, second string) (string, string, error) {
	a, err := c.prompt(first)
	if err != nil {
		return "", "", err
	}
	b, err := c.prompt(second)
	return a, b, err
}

func (c *console) assignTeacher() error {
	t, s, err := c.twoIDs("ID викладача: ", "ID предмета: ")
	if err != nil {
		return err
	}
	err = c.reg.AssignTeacher(t, s)
	if err == nil {
		c.log.Info("teacher assigned", "teacher", t, "subject", s)
	}
	return c.done(err, "Призначення успішне!", ref{registry.KindTeacher, t}, ref{registry.KindSubject, s})
}

func (c *console) removeAssignment() error {
	t, err := c.prompt("ID викладача: ")
	if err != nil {
		return err
	}
	err = c.reg.RemoveAssignment(t)
	if err == nil {
		c.log.Info("assignment removed", "teacher", t)
	}
	return c.done(err, "Призначення видалено!", ref{registry.KindTeacher, t})
}

func (c *console) listAssignments() error {
	rows := c.reg.AssignmentRows()
	c.println("\n=== ВСІ ПРИЗНАЧЕННЯ ВИКЛАДАЧІВ ===")
	if len(rows) == 0 {
		c.println("Призначень немає.")
		return nil
	}
	w := c.table("Викладач", "Ім'я", "Предмет", "Назва")
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.TeacherID, r.TeacherName, r.SubjectID, r.SubjectName)
	}
	return w.Flush()
}

func (c *console) teacherStatus() error {
	id, err := c.prompt("ID викладача: ")
	if err != nil {
		return err
	}
	t, ok := c.reg.Teachers.Get(id)
	if !ok {
		c.missing(ref{registry.KindTeacher, id})
		return nil
	}
	c.printf("Статус: %s\n", c.reg.DetailedStatus(t.TeacherID))
	c.printf("\nІнформація про викладача:\n - Ім'я: %s\n - Кафедра: %s\n - Email: %s\n",
		t.FullName(), t.Department, t.Email)
	return nil
}

func (c *console) enroll() error {
	st, s, err := c.twoIDs("ID студента: ", "ID предмета: ")
	if err != nil {
		return err
	}
	err = c.reg.Enroll(st, s)
	if err == nil {
		c.log.Info("student enrolled", "student", st, "subject", s)
	}
	return c.done(err, "Студента успішно записано на предмет!", ref{registry.KindStudent, st}, ref{registry.KindSubject, s})
}

func (c *console) unenroll() error {
	st, s, err := c.twoIDs("ID студента: ", "ID предмета: ")
	if err != nil {
		return err
	}
	err = c.reg.Unenroll(st, s)
	if err == nil {
		c.log.Info("student unenrolled", "student", st, "subject", s)
	}
	return c.done(err, "Студента успішно видалено з предмету!")
}

func (c *console) listEnrollments() error {
	rows := c.reg.EnrollmentRows()
	c.println("\n=== ВСІ ЗАПИСИ СТУДЕНТІВ ===")
	if len(rows) == 0 {
		c.println("Записів немає.")
		return nil
	}
	w := c.table("Студент", "Ім'я", "Предмет", "Назва")
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.StudentID, r.StudentName, r.SubjectID, r.SubjectName)
	}
	return w.Flush()
}

func (c *console) table(header ...string) *tabwriter.Writer {
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(header, "\t"))
	return w
}
