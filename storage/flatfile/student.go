package flatfile

import (
	"github.com/Vane487/kursovarobota/core/student"
)

type studentRepository struct {
	db *table[student.Student]
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) All() []student.Student {
	return repo.db.query()
}

func (repo *studentRepository) Get(id string) (student.Student, bool) {
	return repo.db.get(id)
}

func (repo *studentRepository) Insert(rec student.Student) error {
	return repo.db.insert(rec)
}

func (repo *studentRepository) Replace(rec student.Student) (bool, error) {
	return repo.db.replace(rec)
}

func (repo *studentRepository) Remove(id string) (bool, error) {
	return repo.db.remove(id)
}

func (repo *studentRepository) Reorder(less func(a, b student.Student) bool) error {
	return repo.db.reorder(less)
}
