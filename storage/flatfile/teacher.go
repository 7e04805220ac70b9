package flatfile

import (
	"github.com/Vane487/kursovarobota/core/teacher"
)

type teacherRepository struct {
	db *table[teacher.Teacher]
}

var _ teacher.Repository = (*teacherRepository)(nil)

func NewTeacherRepository(db *DB) teacher.Repository {
	return &teacherRepository{db: db.teacher}
}

func (repo *teacherRepository) All() []teacher.Teacher {
	return repo.db.query()
}

func (repo *teacherRepository) Get(id string) (teacher.Teacher, bool) {
	return repo.db.get(id)
}

func (repo *teacherRepository) Insert(rec teacher.Teacher) error {
	return repo.db.insert(rec)
}

func (repo *teacherRepository) Replace(rec teacher.Teacher) (bool, error) {
	return repo.db.replace(rec)
}

func (repo *teacherRepository) Remove(id string) (bool, error) {
	return repo.db.remove(id)
}

func (repo *teacherRepository) Reorder(less func(a, b teacher.Teacher) bool) error {
	return repo.db.reorder(less)
}
