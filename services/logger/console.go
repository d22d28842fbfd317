package logsvc

import (
	"log"
	"strings"

	"github.com/trezcool/studentportal/core"
	"github.com/trezcool/studentportal/core/student"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
	LevelFatal: "FATAL",
}

func (lvl Level) String() string { return levelNames[lvl] }

// ParseLevel defaults to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// ConsoleLogger prints entries at or above its level to std.
type ConsoleLogger struct {
	std   *log.Logger
	level Level
}

var _ core.Logger = (*ConsoleLogger)(nil)

func NewConsoleLogger(std *log.Logger, level Level) *ConsoleLogger {
	return &ConsoleLogger{std: std, level: level}
}

func (l ConsoleLogger) log(lvl Level, msg string, args []interface{}) {
	if lvl < l.level {
		return
	}
	printEntry(l.std, lvl, msg, args)
}

func (l ConsoleLogger) Debug(msg string, args ...interface{}) { l.log(LevelDebug, msg, args) }
func (l ConsoleLogger) Info(msg string, args ...interface{})  { l.log(LevelInfo, msg, args) }
func (l ConsoleLogger) Warn(msg string, args ...interface{})  { l.log(LevelWarn, msg, args) }
func (l ConsoleLogger) Error(msg string, args ...interface{}) { l.log(LevelError, msg, args) }

func (l ConsoleLogger) Fatal(msg string, args ...interface{}) {
	printEntry(l.std, LevelFatal, msg, args)
	l.std.Fatal(msg)
}

func printEntry(std *log.Logger, lvl Level, msg string, args []interface{}) {
	std.Printf("[%s] %s", lvl, msg)
	for _, arg := range args {
		if usr, ok := personOf(arg); ok {
			std.Printf("\tstudent: %s", describe(usr))
			continue
		}
		std.Printf("\t%+v", arg)
	}
}

func describe(usr student.Profile) string {
	if usr.ID == 0 {
		return usr.Email
	}
	return usr.FullName() + " <" + usr.Email + ">"
}

// New returns a RollbarLogger when a Rollbar token is configured, a ConsoleLogger otherwise.
func New(conf *core.Config, std *log.Logger) core.Logger {
	if conf.Log.RollbarToken == "" {
		return NewConsoleLogger(std, ParseLevel(conf.Log.Level))
	}
	l := NewRollbarLogger(std, conf)
	l.Enable(!conf.TestMode)
	return l
}
