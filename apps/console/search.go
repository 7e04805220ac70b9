package main

import (
	"github.com/Vane487/kursovarobota/core/subject"
)

func (c *console) searchMenu() error {
	return c.menu("ПОШУК ТА ФІЛЬТРАЦІЯ", "Назад до головного меню", []menuItem{
		{label: "Студенти: пошук за іменем", action: c.searchStudents},
		{label: "Студенти: фільтр за освітньою програмою", action: c.filterStudents},
		{label: "Студенти: сортування за іменем", action: c.sortStudents},
		{label: "Викладачі: пошук за іменем", action: c.searchTeachers},
		{label: "Викладачі: фільтр за кафедрою", action: c.filterTeachers},
		{label: "Викладачі: сортування за іменем", action: c.sortTeachers},
		{label: "Предмети: пошук за назвою", action: c.searchSubjects},
		{label: "Предмети: фільтр за семестром", action: c.filterSubjects},
		{label: "Предмети: сортування за назвою", action: c.sortSubjects},
	})
}

func (c *console) filterStudents() error {
	program, err := c.prompt("Освітня програма: ")
	if err != nil {
		return err
	}
	list(c, "РЕЗУЛЬТАТИ ФІЛЬТРАЦІЇ - Студенти", "Нічого не знайдено.", c.reg.Students.FilterByProgram(program))
	return nil
}

func (c *console) sortStudents() error {
	asc, err := c.ascending()
	if err != nil {
		return err
	}
	if err := c.reg.Students.SortByName(asc); err != nil {
		return err
	}
	c.println("Список відсортовано.")
	return c.listStudents()
}

func (c *console) filterTeachers() error {
	department, err := c.prompt("Кафедра: ")
	if err != nil {
		return err
	}
	list(c, "РЕЗУЛЬТАТИ ФІЛЬТРАЦІЇ - Викладачі", "Нічого не знайдено.", c.reg.Teachers.FilterByDepartment(department))
	return nil
}

func (c *console) sortTeachers() error {
	asc, err := c.ascending()
	if err != nil {
		return err
	}
	if err := c.reg.Teachers.SortByName(asc); err != nil {
		return err
	}
	c.println("Список відсортовано.")
	return c.listTeachers()
}

func (c *console) filterSubjects() error {
	semester, err := c.intField("Семестр", 0)
	if err != nil {
		return err
	}
	if semester < subject.MinSemester || semester > subject.MaxSemester {
		c.printf("Семестр має бути від %d до %d.\n", subject.MinSemester, subject.MaxSemester)
		return nil
	}
	list(c, "РЕЗУЛЬТАТИ ФІЛЬТРАЦІЇ - Предмети", "Нічого не знайдено.", c.reg.Subjects.FilterBySemester(semester))
	return nil
}

func (c *console) sortSubjects() error {
	asc, err := c.ascending()
	if err != nil {
		return err
	}
	if err := c.reg.Subjects.SortByName(asc); err != nil {
		return err
	}
	c.println("Список відсортовано.")
	return c.listSubjects()
}
