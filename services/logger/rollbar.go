package logsvc

import (
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/studentportal/core"
	"github.com/trezcool/studentportal/core/student"
)

// RollbarLogger reports to Rollbar and echoes every entry to std.
type RollbarLogger struct {
	std   *log.Logger
	level Level
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.Log.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetCodeVersion(conf.AppName)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std, level: ParseLevel(conf.Log.Level)}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// expected fmt: msg | error, map[string]interface{}, student.Profile
func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	var usrSet bool
	newArgs := make([]interface{}, 0, len(args)+1)
	newArgs = append(newArgs, msg)
	for _, arg := range args {
		// set the affected student
		if usr, ok := personOf(arg); ok {
			if !usrSet { // only set one student
				rollbar.SetPerson(usr.Email, usr.FullName(), usr.Email)
				usrSet = true
			}
		} else {
			newArgs = append(newArgs, arg)
		}
	}
	if !usrSet {
		rollbar.ClearPerson()
	}
	return newArgs
}

func personOf(arg interface{}) (student.Profile, bool) {
	switch usr := arg.(type) {
	case student.Profile:
		return usr, true
	case *student.Profile:
		if usr != nil {
			return *usr, true
		}
	}
	return student.Profile{}, false
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	if l.level > LevelDebug {
		return
	}
	rollbar.Debug(l.prepare(msg, args)...)
	printEntry(l.std, LevelDebug, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	if l.level > LevelInfo {
		return
	}
	rollbar.Info(l.prepare(msg, args)...)
	printEntry(l.std, LevelInfo, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	if l.level > LevelWarn {
		return
	}
	rollbar.Warning(l.prepare(msg, args)...)
	printEntry(l.std, LevelWarn, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	printEntry(l.std, LevelError, msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.prepare(msg, args)...)
	printEntry(l.std, LevelFatal, msg, args)
	rollbar.Wait()
	l.std.Fatal(msg)
}
