package dig_container

import (
	"log"

	"github.com/pkg/errors"
	"go.uber.org/dig"

	"github.com/Vane487/kursovarobota/core"
	"github.com/Vane487/kursovarobota/core/assignment"
	"github.com/Vane487/kursovarobota/core/registry"
	"github.com/Vane487/kursovarobota/core/student"
	"github.com/Vane487/kursovarobota/core/subject"
	"github.com/Vane487/kursovarobota/core/teacher"
	"github.com/Vane487/kursovarobota/core/user"
	logsvc "github.com/Vane487/kursovarobota/services/logger"
	"github.com/Vane487/kursovarobota/storage/flatfile"
)

// App is everything a front end needs once the container is built.
type App struct {
	dig.In

	Config    *core.Config
	Logger    core.Logger
	ZapLogger *logsvc.ZapLogger
	DB        *flatfile.DB
	Users     *user.Service
	Registry  *registry.Registry
}

func newLogger(zl *logsvc.ZapLogger) core.Logger {
	return zl.With("component", "records")
}

func newValidator(conf *core.Config) *core.Validator {
	return core.NewValidator(conf.StrictIDs)
}

func newDB(conf *core.Config, validate *core.Validator, logger core.Logger) (*flatfile.DB, error) {
	db, err := flatfile.Open(flatfile.FilesFromConfig(conf), validate, logger)
	if err != nil {
		return nil, errors.Wrap(err, "opening data files")
	}
	return db, nil
}

func newHasher(conf *core.Config) (user.Hasher, error) {
	return user.NewHasher(conf.Auth.Hasher)
}

type registryParams struct {
	dig.In

	Conf      *core.Config
	Logger    core.Logger
	Students  *student.Service
	Teachers  *teacher.Service
	Subjects  *subject.Service
	Relations *assignment.Manager
}

func newRegistry(p registryParams) *registry.Registry {
	return registry.New(p.Students, p.Teachers, p.Subjects, p.Relations, p.Logger, p.Conf.Enrollment.MaxSubjects)
}

// New returns a new dependency injection dig.Container built around conf
func New(conf *core.Config) *dig.Container {
	c := dig.New()

	must(c.Provide(func() *core.Config { return conf }))
	must(c.Provide(logsvc.NewZapLogger))
	must(c.Provide(newLogger))
	must(c.Provide(newValidator))
	must(c.Provide(newDB))
	must(c.Provide(flatfile.NewStudentRepository))
	must(c.Provide(flatfile.NewTeacherRepository))
	must(c.Provide(flatfile.NewSubjectRepository))
	must(c.Provide(flatfile.NewUserRepository))
	must(c.Provide(flatfile.NewRelationStore))
	must(c.Provide(assignment.NewManager))
	must(c.Provide(newHasher))
	must(c.Provide(student.NewService))
	must(c.Provide(subject.NewService))
	must(c.Provide(registry.Bindings))
	must(c.Provide(teacher.NewService))
	must(c.Provide(user.NewService))
	must(c.Provide(newRegistry))

	return c
}

// Build resolves an App from a fresh container. Nothing is read from disk yet; see App.Load.
func Build(conf *core.Config) (App, error) {
	var app App
	err := New(conf).Invoke(func(a App) { app = a })
	return app, errors.Wrap(err, "building application")
}

// Load reads every data file, makes sure the bootstrap admin exists and reconciles
// subject records with the assignments. Per-file reports are logged and returned.
func (app App) Load() ([]core.LoadReport, error) {
	reports, err := app.DB.Load()
	if err != nil {
		return reports, err
	}
	report, err := app.Registry.Relations.Load()
	if err != nil {
		return reports, err
	}
	reports = append(reports, report)

	for _, r := range reports {
		app.Logger.Info("data file loaded", "file", r.File, "loaded", r.Loaded, "skipped", r.Skipped)
	}

	created, err := app.Users.EnsureBootstrapAdmin(app.Config.Auth.AdminPassword)
	if err != nil {
		return reports, errors.Wrap(err, "bootstrap admin")
	}
	if created {
		app.Logger.Info("bootstrap admin ensured", "username", user.BootstrapUsername)
	}

	changed, err := app.Registry.Sync()
	if err != nil {
		return reports, errors.Wrap(err, "syncing subjects with assignments")
	}
	if changed > 0 {
		app.Logger.Warn("subject records reconciled with assignments", "changed", changed)
	}
	return reports, nil
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
