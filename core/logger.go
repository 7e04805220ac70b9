package core

// Logger is the logging facade used across the application.
// args are key/value pairs; errors and user.User values are recognised on their own.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
