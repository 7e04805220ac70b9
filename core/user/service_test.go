package user

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vane487/kursovarobota/core"
)

var errDiskFull = errors.New("disk full")

type memRepo struct {
	users map[string]User
	fail  bool
}

func (r *memRepo) All() []User {
	out := make([]User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out
}

func (r *memRepo) Get(username string) (User, bool) {
	u, ok := r.users[username]
	return u, ok
}

func (r *memRepo) Insert(usr User) error {
	if r.fail {
		return errDiskFull
	}
	r.users[usr.Username] = usr
	return nil
}

func (r *memRepo) Replace(usr User) (bool, error) {
	if _, ok := r.users[usr.Username]; !ok {
		return false, nil
	}
	if r.fail {
		return false, errDiskFull
	}
	r.users[usr.Username] = usr
	return true, nil
}

func (r *memRepo) Remove(username string) (bool, error) {
	if _, ok := r.users[username]; !ok {
		return false, nil
	}
	if r.fail {
		return false, errDiskFull
	}
	delete(r.users, username)
	return true, nil
}

func setup(t *testing.T, hasher Hasher) (*Service, *memRepo) {
	t.Helper()
	repo := &memRepo{users: make(map[string]User)}
	svc := NewService(repo, core.NewValidator(false), hasher)
	created, err := svc.EnsureBootstrapAdmin("admin123")
	require.NoError(t, err)
	require.True(t, created)
	return svc, repo
}

func TestService_AddUser(t *testing.T) {
	svc, repo := setup(t, nil)

	tests := []struct {
		name       string
		username   string
		password   string
		role       Role
		wantErr    error
		validation bool
	}{
		{name: "valid", username: "olena", password: "secret1", role: RoleStudent},
		{name: "username lowered", username: " Taras ", password: "kobzar1", role: RoleTeacher},
		{name: "duplicate", username: "OLENA", password: "secret1", role: RoleStudent, wantErr: ErrUsernameExists},
		{name: "empty username", username: "", password: "secret1", role: RoleStudent, validation: true},
		{name: "colon in username", username: "a:b", password: "secret1", role: RoleStudent, validation: true},
		{name: "space in username", username: "a b", password: "secret1", role: RoleStudent, validation: true},
		{name: "short password", username: "ivan", password: "ab1", role: RoleStudent, validation: true},
		{name: "no digit", username: "ivan", password: "abcdefg", role: RoleStudent, validation: true},
		{name: "no letter", username: "ivan", password: "1234567", role: RoleStudent, validation: true},
		{name: "whitespace in password", username: "ivan", password: "abc 123", role: RoleStudent, validation: true},
		{name: "unknown role", username: "ivan", password: "abc123", role: Role("janitor"), validation: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.AddUser(tt.username, tt.password, tt.role)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.validation:
				assert.True(t, core.IsValidation(err), "error = %v", err)
			default:
				assert.NoError(t, err)
			}
		})
	}
	assert.Len(t, repo.users, 3)
	usr, ok := svc.Get("TARAS")
	require.True(t, ok)
	assert.Equal(t, RoleTeacher, usr.Role)

	// a failed save leaves nothing behind
	repo.fail = true
	assert.ErrorIs(t, svc.AddUser("ivan", "abc123", RoleStudent), errDiskFull)
	_, ok = svc.Get("ivan")
	assert.False(t, ok)
}

func TestService_Authenticate(t *testing.T) {
	for _, hasher := range []Hasher{PlainHasher{}, BcryptHasher{Cost: 4}} {
		svc, repo := setup(t, hasher)
		require.NoError(t, svc.AddUser("olena", "secret1", RoleStudent))

		usr, err := svc.Authenticate("admin", "admin123")
		require.NoError(t, err)
		assert.True(t, usr.IsAdmin())

		usr, err = svc.Authenticate(" Olena ", "secret1")
		require.NoError(t, err)
		assert.True(t, usr.IsStudent())

		for _, creds := range [][2]string{{"olena", "wrong1"}, {"ghost", "secret1"}, {"", ""}, {"olena", ""}} {
			_, err := svc.Authenticate(creds[0], creds[1])
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		}

		if _, isBcrypt := hasher.(BcryptHasher); isBcrypt {
			assert.NotEqual(t, "secret1", repo.users["olena"].Password)
		} else {
			assert.Equal(t, "secret1", repo.users["olena"].Password)
		}
	}
}

func TestService_EditAndRemove(t *testing.T) {
	svc, _ := setup(t, nil)
	require.NoError(t, svc.AddUser("olena", "secret1", RoleStudent))

	require.NoError(t, svc.EditUser("olena", "", RoleTeacher))
	usr, _ := svc.Get("olena")
	assert.Equal(t, RoleTeacher, usr.Role)
	assert.Equal(t, "secret1", usr.Password)

	require.NoError(t, svc.EditUser("olena", "newpass2", RoleTeacher))
	_, err := svc.Authenticate("olena", "newpass2")
	assert.NoError(t, err)

	assert.True(t, core.IsValidation(svc.EditUser("olena", "short", RoleTeacher)))
	assert.ErrorIs(t, svc.EditUser("ghost", "secret1", RoleTeacher), ErrNotFound)
	assert.ErrorIs(t, svc.EditUser("admin", "", RoleTeacher), ErrDemoteBootstrapAdmin)
	require.NoError(t, svc.SetPassword("admin", "changed9"))
	_, err = svc.Authenticate("admin", "changed9")
	assert.NoError(t, err)

	err = svc.RemoveUser("admin")
	assert.ErrorIs(t, err, ErrDeleteBootstrapAdmin)
	assert.True(t, core.IsConflict(err))
	assert.ErrorIs(t, svc.RemoveUser(" ADMIN "), ErrDeleteBootstrapAdmin)
	_, ok := svc.Get("admin")
	assert.True(t, ok)

	require.NoError(t, svc.RemoveUser("olena"))
	assert.ErrorIs(t, svc.RemoveUser("olena"), ErrNotFound)

	assert.Equal(t, []User{{Username: "admin", Password: "changed9", Role: RoleAdmin}}, svc.List())
}

func TestService_EnsureBootstrapAdmin(t *testing.T) {
	svc, repo := setup(t, nil)

	created, err := svc.EnsureBootstrapAdmin("admin123")
	require.NoError(t, err)
	assert.False(t, created)

	repo.users["admin"] = User{Username: "admin", Password: "x1", Role: RoleStudent}
	changed, err := svc.EnsureBootstrapAdmin("admin123")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, RoleAdmin, repo.users["admin"].Role)
	assert.Equal(t, "x1", repo.users["admin"].Password)

	delete(repo.users, "admin")
	_, err = svc.EnsureBootstrapAdmin("")
	assert.ErrorIs(t, err, ErrBootstrapPasswordUnset)
}

func TestRoles(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "Адміністратор", want: RoleAdmin},
		{in: "Викладач", want: RoleTeacher},
		{in: "Студент", want: RoleStudent},
		{in: "admin", want: RoleAdmin},
		{in: "TEACHER", want: RoleTeacher},
		{in: "Administrator", want: RoleAdmin},
		{in: "dean", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.True(t, RoleAdmin.AtLeast(RoleTeacher))
	assert.True(t, RoleTeacher.AtLeast(RoleTeacher))
	assert.False(t, RoleStudent.AtLeast(RoleTeacher))
	assert.False(t, Role("ghost").AtLeast(RoleStudent))
	assert.Equal(t, "Викладач", RoleTeacher.Label())
}

func TestNewHasher(t *testing.T) {
	h, err := NewHasher("")
	require.NoError(t, err)
	assert.IsType(t, PlainHasher{}, h)

	h, err = NewHasher("bcrypt")
	require.NoError(t, err)
	assert.IsType(t, BcryptHasher{}, h)

	_, err = NewHasher("md5")
	assert.Error(t, err)
}
