package logsvc

import (
	"bytes"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/studentportal/core"
	"github.com/trezcool/studentportal/core/student"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		" INFO ":  LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(log.New(&buf, "", 0), LevelWarn)

	l.Info("hidden")
	l.Warn("fetching registered courses", errors.New("boom"), student.Profile{ID: 1, FirstName: "Ada", LastName: "Obi", Email: "ada@example.com"})
	l.Error("logging out", map[string]interface{}{"status": 0}, &student.Profile{Email: "x@y.z"})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] fetching registered courses")
	assert.Contains(t, out, "\tboom")
	assert.Contains(t, out, "student: Ada Obi <ada@example.com>")
	assert.Contains(t, out, "[ERROR] logging out")
	assert.Contains(t, out, "student: x@y.z")
}

func TestNew(t *testing.T) {
	conf := &core.Config{Env: "TEST", TestMode: true}
	conf.Log.Level = "debug"
	std := log.New(new(bytes.Buffer), "", 0)

	_, ok := New(conf, std).(*ConsoleLogger)
	assert.True(t, ok)

	conf.Log.RollbarToken = "token"
	l, ok := New(conf, std).(*RollbarLogger)
	if assert.True(t, ok) {
		assert.Equal(t, LevelDebug, l.level)
	}
}

func TestRollbarLogger_prepare(t *testing.T) {
	l := RollbarLogger{std: log.New(new(bytes.Buffer), "", 0)}
	err := errors.New("boom")
	args := l.prepare("msg", []interface{}{err, student.Profile{Email: "a@b.cd"}, student.Profile{Email: "other@b.cd"}})
	assert.Equal(t, []interface{}{"msg", err}, args)
}
