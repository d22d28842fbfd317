package core

// Logger is any structured log sink.
// expected args: error, map[string]interface{}, student.Profile (as the affected person)
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
