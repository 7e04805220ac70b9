package flatfile

import (
	"github.com/Vane487/kursovarobota/core/subject"
)

type subjectRepository struct {
	db *table[subject.Subject]
}

var _ subject.Repository = (*subjectRepository)(nil)

func NewSubjectRepository(db *DB) subject.Repository {
	return &subjectRepository{db: db.subject}
}

func (repo *subjectRepository) All() []subject.Subject {
	return repo.db.query()
}

func (repo *subjectRepository) Get(id string) (subject.Subject, bool) {
	return repo.db.get(id)
}

func (repo *subjectRepository) Insert(rec subject.Subject) error {
	return repo.db.insert(rec)
}

func (repo *subjectRepository) Replace(rec subject.Subject) (bool, error) {
	return repo.db.replace(rec)
}

func (repo *subjectRepository) Remove(id string) (bool, error) {
	return repo.db.remove(id)
}

func (repo *subjectRepository) Reorder(less func(a, b subject.Subject) bool) error {
	return repo.db.reorder(less)
}
