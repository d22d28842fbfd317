package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	AppName  string
	Env      string // DEV (local; default), TEST, QA, PROD
	Debug    bool
	TestMode bool
	WorkDir  string

	Backend struct {
		BaseURL string
		Timeout time.Duration
	}

	Session struct {
		FlagFile   string
		CookieFile string
	}

	Log struct {
		Level        string
		RollbarToken string
	}

	DevBackend struct {
		Address    string
		SecretKey  string
		TokenTTL   time.Duration
		CookieName string
	}
}

// LoadConfig reads the configuration from the environment.
// Variables are prefixed with the current ENV, e.g. DEV_BACKEND_BASEURL.
func LoadConfig() (*Config, error) {
	v := viper.New()

	env := strings.ToUpper(CleanString(os.Getenv("ENV")))
	if env == "" {
		env = "DEV"
	}

	wd, err := workDir()
	if err != nil {
		return nil, err
	}
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		cfgDir = wd
	}
	sessionDir := filepath.Join(cfgDir, "studentportal")

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("appName", "Student Portal")
	v.SetDefault("debug", env == "DEV")
	v.SetDefault("testMode", env == "TEST")
	v.SetDefault("backend.baseURL", "http://localhost:3000")
	v.SetDefault("backend.timeout", 10*time.Second)
	v.SetDefault("session.flagFile", filepath.Join(sessionDir, "session.json"))
	v.SetDefault("session.cookieFile", filepath.Join(sessionDir, "cookies.json"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.rollbarToken", "")
	v.SetDefault("devbackend.address", ":3000")
	v.SetDefault("devbackend.secretKey", "n2x!4r@dev-only-secret-8k#p0q")
	v.SetDefault("devbackend.tokenTTL", 24*time.Hour)
	v.SetDefault("devbackend.cookieName", "token")

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "stat %s", dotEnvPath)
	}

	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	conf := &Config{
		AppName:  v.GetString("appName"),
		Env:      env,
		Debug:    v.GetBool("debug"),
		TestMode: v.GetBool("testMode"),
		WorkDir:  wd,
	}
	conf.Backend.BaseURL = strings.TrimRight(v.GetString("backend.baseURL"), "/")
	conf.Backend.Timeout = v.GetDuration("backend.timeout")
	conf.Session.FlagFile = v.GetString("session.flagFile")
	conf.Session.CookieFile = v.GetString("session.cookieFile")
	conf.Log.Level = strings.ToLower(v.GetString("log.level"))
	conf.Log.RollbarToken = v.GetString("log.rollbarToken")
	conf.DevBackend.Address = v.GetString("devbackend.address")
	conf.DevBackend.SecretKey = v.GetString("devbackend.secretKey")
	conf.DevBackend.TokenTTL = v.GetDuration("devbackend.tokenTTL")
	conf.DevBackend.CookieName = v.GetString("devbackend.cookieName")
	return conf, nil
}

// workDir is PORTAL_WORKDIR when set, the current directory otherwise.
func workDir() (string, error) {
	if wd := os.Getenv("PORTAL_WORKDIR"); wd != "" {
		return wd, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "getting working directory")
	}
	return wd, nil
}
