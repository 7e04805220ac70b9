package core

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds the application settings. It is built once by NewConfig and passed down.
type Config struct {
	Env   string
	Debug bool

	Data struct {
		Dir             string
		StudentsFile    string
		TeachersFile    string
		SubjectsFile    string
		UsersFile       string
		AssignmentsFile string
	}

	Log struct {
		Level  string // debug, info, warn, error
		Format string // console, json
	}

	Locale    string
	StrictIDs bool

	Auth struct {
		AdminPassword string
		Hasher        string // plain, bcrypt
	}

	Enrollment struct {
		MaxSubjects int // 0 = unlimited
	}
}

// DataPath resolves name inside the data directory. Absolute names are returned as is.
func (c *Config) DataPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Data.Dir, name)
}

// NewConfig reads defaults, the optional `config/.env.<env>` file under workDir, then the environment.
// ENV selects the environment (DEV by default) and doubles as the variable prefix, e.g. DEV_DATA_DIR.
func NewConfig(workDir string) (*Config, error) {
	v := viper.New()

	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", false)
	v.SetDefault("data_dir", "data")
	v.SetDefault("students_file", "students.csv")
	v.SetDefault("teachers_file", "teachers.csv")
	v.SetDefault("subjects_file", "subjects.csv")
	v.SetDefault("users_file", "users.txt")
	v.SetDefault("assignments_file", "assignments.txt")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("locale", "uk")
	v.SetDefault("strict_ids", false)
	v.SetDefault("admin_password", "admin123")
	v.SetDefault("password_hasher", "plain")
	v.SetDefault("max_subjects_per_student", 10)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (default), TEST, PROD
	if env == "" {
		env = "DEV"
	}
	if env == "DEV" {
		v.SetDefault("debug", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(workDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "stat %s", dotEnvPath)
	}
	v.AutomaticEnv()

	conf := new(Config)
	conf.Env = env
	conf.Debug = v.GetBool("debug")
	conf.Data.Dir = v.GetString("data_dir")
	conf.Data.StudentsFile = conf.DataPath(v.GetString("students_file"))
	conf.Data.TeachersFile = conf.DataPath(v.GetString("teachers_file"))
	conf.Data.SubjectsFile = conf.DataPath(v.GetString("subjects_file"))
	conf.Data.UsersFile = conf.DataPath(v.GetString("users_file"))
	conf.Data.AssignmentsFile = conf.DataPath(v.GetString("assignments_file"))
	conf.Log.Level = CleanString(v.GetString("log_level"), true /* lower */)
	conf.Log.Format = CleanString(v.GetString("log_format"), true /* lower */)
	conf.Locale = CleanString(v.GetString("locale"))
	conf.StrictIDs = v.GetBool("strict_ids")
	conf.Auth.AdminPassword = v.GetString("admin_password")
	conf.Auth.Hasher = CleanString(v.GetString("password_hasher"), true /* lower */)
	conf.Enrollment.MaxSubjects = v.GetInt("max_subjects_per_student")

	if conf.Enrollment.MaxSubjects < 0 {
		return nil, errors.Errorf("max_subjects_per_student must not be negative (got %d)", conf.Enrollment.MaxSubjects)
	}
	return conf, nil
}
