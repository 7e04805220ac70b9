package user

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/Vane487/kursovarobota/core"
)

// BootstrapUsername is the administrator account that always exists and cannot be deleted.
const BootstrapUsername = "admin"

var (
	// errors
	ErrNotFound               = errors.New("user not found")
	ErrUsernameExists         = errors.New("a user with this username already exists")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrDeleteBootstrapAdmin   = errors.New("the default administrator cannot be deleted")
	ErrDemoteBootstrapAdmin   = errors.New("the default administrator must keep the Admin role")
	ErrBootstrapPasswordUnset = errors.New("the default administrator password is empty")
)

type (
	// Repository keeps user accounts keyed by username. Every mutating call persists,
	// and leaves memory unchanged when persisting fails.
	Repository interface {
		All() []User
		Get(username string) (User, bool)
		Insert(usr User) error
		Replace(usr User) (bool, error)
		Remove(username string) (bool, error)
	}

	Service struct {
		repo     Repository
		validate *core.Validator
		hasher   Hasher
	}
)

func NewService(repo Repository, validate *core.Validator, hasher Hasher) *Service {
	InitValidators(validate)
	if hasher == nil {
		hasher = PlainHasher{}
	}
	return &Service{repo: repo, validate: validate, hasher: hasher}
}

func (svc *Service) AddUser(uname, pwd string, role Role) error {
	nu := NewUser{
		Username: core.CleanString(uname, true /* lower */),
		Password: pwd,
		Role:     role,
	}
	if err := svc.validate.Struct(nu); err != nil {
		return err
	}
	if _, ok := svc.repo.Get(nu.Username); ok {
		return core.NewConflictError(ErrUsernameExists, "user", nu.Username)
	}
	hash, err := svc.hasher.Hash(nu.Password)
	if err != nil {
		return errors.Wrap(err, "hashing password")
	}
	return svc.repo.Insert(User{Username: nu.Username, Password: hash, Role: nu.Role})
}

// EditUser changes the password and role of an existing account. An empty pwd keeps the current password.
func (svc *Service) EditUser(uname, pwd string, role Role) error {
	uname = core.CleanString(uname, true /* lower */)
	usr, ok := svc.repo.Get(uname)
	if !ok {
		return ErrNotFound
	}
	uu := UpdateUser{Password: pwd, Role: role}
	if err := svc.validate.Struct(uu); err != nil {
		return err
	}
	if uname == BootstrapUsername && role != RoleAdmin {
		return core.NewValidationError(ErrDemoteBootstrapAdmin, core.FieldError{Field: "role", Error: ErrDemoteBootstrapAdmin.Error()})
	}
	if uu.Password != "" {
		hash, err := svc.hasher.Hash(uu.Password)
		if err != nil {
			return errors.Wrap(err, "hashing password")
		}
		usr.Password = hash
	}
	usr.Role = uu.Role
	_, err := svc.repo.Replace(usr)
	return err
}

// SetPassword replaces the password of uname after checking the policy.
func (svc *Service) SetPassword(uname, pwd string) error {
	usr, ok := svc.Get(uname)
	if !ok {
		return ErrNotFound
	}
	if pwd == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "password", Error: "this field is required"})
	}
	return svc.EditUser(usr.Username, pwd, usr.Role)
}

func (svc *Service) RemoveUser(uname string) error {
	uname = core.CleanString(uname, true /* lower */)
	if uname == BootstrapUsername {
		return core.NewConflictError(ErrDeleteBootstrapAdmin, "user", uname)
	}
	ok, err := svc.repo.Remove(uname)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Authenticate returns the account matching the credentials.
// Every failure is ErrInvalidCredentials; the wrapping message tells which check failed.
func (svc *Service) Authenticate(uname, pwd string) (User, error) {
	uname = core.CleanString(uname, true /* lower */)
	if uname == "" || pwd == "" {
		return User{}, errors.Wrap(ErrInvalidCredentials, "empty username or password")
	}
	usr, ok := svc.repo.Get(uname)
	if !ok {
		return User{}, errors.Wrapf(ErrInvalidCredentials, "unknown user %q", uname)
	}
	if err := svc.hasher.Compare(usr.Password, pwd); err != nil {
		return User{}, errors.Wrapf(ErrInvalidCredentials, "wrong password for %q", uname)
	}
	return usr, nil
}

// EnsureBootstrapAdmin creates the bootstrap administrator when it is missing and
// restores its Admin role when the file says otherwise. It reports whether anything changed.
func (svc *Service) EnsureBootstrapAdmin(pwd string) (bool, error) {
	usr, ok := svc.repo.Get(BootstrapUsername)
	if ok {
		if usr.Role == RoleAdmin {
			return false, nil
		}
		usr.Role = RoleAdmin
		_, err := svc.repo.Replace(usr)
		return err == nil, err
	}
	if pwd == "" {
		return false, ErrBootstrapPasswordUnset
	}
	hash, err := svc.hasher.Hash(pwd)
	if err != nil {
		return false, errors.Wrap(err, "hashing password")
	}
	if err := svc.repo.Insert(User{Username: BootstrapUsername, Password: hash, Role: RoleAdmin}); err != nil {
		return false, err
	}
	return true, nil
}

func (svc *Service) Get(uname string) (User, bool) {
	return svc.repo.Get(core.CleanString(uname, true /* lower */))
}

// List returns every account sorted by username.
func (svc *Service) List() []User {
	users := svc.repo.All()
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users
}

func (svc *Service) Count() int {
	return len(svc.repo.All())
}
