package flatfile

import (
	"github.com/Vane487/kursovarobota/core/user"
)

type userRepository struct {
	db *table[user.User]
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.user}
}

func (repo *userRepository) All() []user.User {
	return repo.db.query()
}

func (repo *userRepository) Get(username string) (user.User, bool) {
	return repo.db.get(username)
}

func (repo *userRepository) Insert(usr user.User) error {
	return repo.db.insert(usr)
}

func (repo *userRepository) Replace(usr user.User) (bool, error) {
	return repo.db.replace(usr)
}

func (repo *userRepository) Remove(username string) (bool, error) {
	return repo.db.remove(username)
}
