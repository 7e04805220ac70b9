package main

import (
	"github.com/Vane487/kursovarobota/core/registry"
	"github.com/Vane487/kursovarobota/core/student"
	"github.com/Vane487/kursovarobota/core/subject"
	"github.com/Vane487/kursovarobota/core/teacher"
)

const back = "Назад"

// Students

func (c *console) studentsMenu() error {
	return c.menu("СТУДЕНТИ", back, []menuItem{
		{label: "Переглянути всіх", action: c.listStudents},
		{label: "Додати", admin: true, action: c.addStudent},
		{label: "Редагувати", admin: true, action: c.editStudent},
		{label: "Видалити", admin: true, action: c.deleteStudent},
		{label: "Знайти за іменем", action: c.searchStudents},
	})
}

func (c *console) listStudents() error {
	list(c, "СТУДЕНТИ", "Студенти відсутні.", c.reg.Students.List())
	return nil
}

func (c *console) readStudent(s student.Student) (student.Student, error) {
	var err error
	for _, f := range []struct {
		label string
		dst   *string
	}{
		{"Ім'я", &s.Name},
		{"Прізвище", &s.LastName},
		{"Email", &s.Email},
		{"Освітня програма", &s.Program},
	} {
		if *f.dst, err = c.field(f.label, *f.dst); err != nil {
			return s, err
		}
	}
	return s, nil
}

func (c *console) addStudent() error {
	id, err := c.prompt("ID студента: ")
	if err != nil {
		return err
	}
	s, err := c.readStudent(student.Student{StudentID: id})
	if err != nil {
		return err
	}
	if err := c.reg.Students.Add(s); err != nil {
		return err
	}
	c.log.Info("student added", "student", s.StudentID)
	c.println("Студента додано.")
	return nil
}

func (c *console) editStudent() error {
	id, err := c.prompt("ID студента: ")
	if err != nil {
		return err
	}
	s, ok := c.reg.Students.Get(id)
	if !ok {
		c.missing(ref{registry.KindStudent, id})
		return nil
	}
	if s, err = c.readStudent(s); err != nil {
		return err
	}
	if err := c.reg.Students.Edit(id, s); err != nil {
		return err
	}
	c.log.Info("student edited", "student", id)
	c.println("Дані студента оновлено.")
	return nil
}

func (c *console) deleteStudent() error {
	id, err := c.prompt("ID студента: ")
	if err != nil {
		return err
	}
	ok, err := c.reg.DeleteStudent(id)
	if err != nil {
		return err
	}
	if !ok {
		c.missing(ref{registry.KindStudent, id})
		return nil
	}
	c.log.Info("student deleted", "student", id)
	c.println("Студента видалено.")
	return nil
}

func (c *console) searchStudents() error {
	text, err := c.prompt("Текст для пошуку: ")
	if err != nil {
		return err
	}
	list(c, "РЕЗУЛЬТАТИ ПОШУКУ - Студенти", "Нічого не знайдено.", c.reg.Students.SearchByName(text))
	return nil
}

// Teachers

func (c *console) teachersMenu() error {
	return c.menu("ВИКЛАДАЧІ", back, []menuItem{
		{label: "Переглянути всіх", action: c.listTeachers},
		{label: "Додати", admin: true, action: c.addTeacher},
		{label: "Редагувати", admin: true, action: c.editTeacher},
		{label: "Видалити", admin: true, action: c.deleteTeacher},
		{label: "Знайти за іменем", action: c.searchTeachers},
	})
}

func (c *console) listTeachers() error {
	list(c, "ВИКЛАДАЧІ", "Викладачі відсутні.", c.reg.Teachers.List())
	return nil
}

func (c *console) readTeacher(t teacher.Teacher, keepDegree bool) (teacher.Teacher, error) {
	var err error
	for _, f := range []struct {
		label string
		dst   *string
	}{
		{"Ім'я", &t.Name},
		{"Прізвище", &t.LastName},
		{"Email", &t.Email},
		{"Кафедра", &t.Department},
	} {
		if *f.dst, err = c.field(f.label, *f.dst); err != nil {
			return t, err
		}
	}

	current := ""
	if keepDegree {
		current = t.Degree.String()
	}
	v, err := c.field("Науковий ступінь (0 - Bachelor, 1 - Master, 2 - Doctor)", current)
	if err != nil {
		return t, err
	}
	if t.Degree, err = teacher.ParseDegree(v); err != nil {
		return t, err
	}
	return t, nil
}

func (c *console) addTeacher() error {
	id, err := c.prompt("ID викладача: ")
	if err != nil {
		return err
	}
	t, err := c.readTeacher(teacher.Teacher{TeacherID: id}, false)
	if err != nil {
		return err
	}
	if err := c.reg.Teachers.Add(t); err != nil {
		return err
	}
	c.log.Info("teacher added", "teacher", t.TeacherID)
	c.println("Викладача додано.")
	return nil
}

func (c *console) editTeacher() error {
	id, err := c.prompt("ID викладача: ")
	if err != nil {
		return err
	}
	t, ok := c.reg.Teachers.Get(id)
	if !ok {
		c.missing(ref{registry.KindTeacher, id})
		return nil
	}
	if t, err = c.readTeacher(t, true); err != nil {
		return err
	}
	if err := c.reg.Teachers.Edit(id, t); err != nil {
		return err
	}
	c.log.Info("teacher edited", "teacher", id)
	c.println("Дані викладача оновлено.")
	return nil
}

func (c *console) deleteTeacher() error {
	id, err := c.prompt("ID викладача: ")
	if err != nil {
		return err
	}
	ok, err := c.reg.DeleteTeacher(id)
	if err != nil {
		return err
	}
	if !ok {
		c.missing(ref{registry.KindTeacher, id})
		return nil
	}
	c.log.Info("teacher deleted", "teacher", id)
	c.println("Викладача видалено.")
	return nil
}

func (c *console) searchTeachers() error {
	text, err := c.prompt("Текст для пошуку: ")
	if err != nil {
		return err
	}
	list(c, "РЕЗУЛЬТАТИ ПОШУКУ - Викладачі", "Нічого не знайдено.", c.reg.Teachers.SearchByName(text))
	return nil
}

// Subjects

func (c *console) subjectsMenu() error {
	return c.menu("ПРЕДМЕТИ", back, []menuItem{
		{label: "Переглянути всі", action: c.listSubjects},
		{label: "Додати", admin: true, action: c.addSubject},
		{label: "Редагувати", admin: true, action: c.editSubject},
		{label: "Видалити", admin: true, action: c.deleteSubject},
		{label: "Знайти за назвою", action: c.searchSubjects},
	})
}

func (c *console) listSubjects() error {
	list(c, "ПРЕДМЕТИ", "Предмети відсутні.", c.reg.Subjects.List())
	return nil
}

func (c *console) readSubject(s subject.Subject) (subject.Subject, error) {
	var err error
	if s.Name, err = c.field("Назва", s.Name); err != nil {
		return s, err
	}
	if s.Credits, err = c.intField("Кредити ЄКТС", s.Credits); err != nil {
		return s, err
	}
	if s.Semester, err = c.intField("Семестр", s.Semester); err != nil {
		return s, err
	}
	return s, nil
}

func (c *console) addSubject() error {
	id, err := c.prompt("ID предмета: ")
	if err != nil {
		return err
	}
	s, err := c.readSubject(subject.Subject{SubjectID: id})
	if err != nil {
		return err
	}
	if s.TeacherID, err = c.prompt("ID викладача (порожньо - без викладача): "); err != nil {
		return err
	}
	err = c.reg.AddSubject(s)
	if err == nil {
		c.log.Info("subject added", "subject", s.SubjectID, "teacher", s.TeacherID)
	}
	return c.done(err, "Предмет додано.", ref{registry.KindTeacher, s.TeacherID})
}

func (c *console) editSubject() error {
	id, err := c.prompt("ID предмета: ")
	if err != nil {
		return err
	}
	s, ok := c.reg.Subjects.Get(id)
	if !ok {
		c.missing(ref{registry.KindSubject, id})
		return nil
	}
	if s, err = c.readSubject(s); err != nil {
		return err
	}
	if err := c.reg.EditSubject(id, s); err != nil {
		return err
	}
	c.log.Info("subject edited", "subject", id)
	c.println("Дані предмета оновлено.")
	return nil
}

func (c *console) deleteSubject() error {
	id, err := c.prompt("ID предмета: ")
	if err != nil {
		return err
	}
	ok, err := c.reg.DeleteSubject(id)
	if err != nil {
		return err
	}
	if !ok {
		c.missing(ref{registry.KindSubject, id})
		return nil
	}
	c.log.Info("subject deleted", "subject", id)
	c.println("Предмет видалено.")
	return nil
}

func (c *console) searchSubjects() error {
	text, err := c.prompt("Текст для пошуку: ")
	if err != nil {
		return err
	}
	list(c, "РЕЗУЛЬТАТИ ПОШУКУ - Предмети", "Нічого не знайдено.", c.reg.Subjects.SearchByName(text))
	return nil
}
