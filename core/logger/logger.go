package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Config struct {
	Level  string
	Format string // text | json
}

var log = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Init configures the package logger. Unknown levels are reported, the previous level stays.
func Init(config Config) error {
	if strings.EqualFold(config.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if config.Level == "" {
		return nil
	}
	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", config.Level, err)
	}
	log.SetLevel(level)
	return nil
}

func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

func Debug(msg string, kv ...any) {
	log.WithFields(fields(kv)).Debug(msg)
}

func Info(msg string, kv ...any) {
	log.WithFields(fields(kv)).Info(msg)
}

func Warn(msg string, kv ...any) {
	log.WithFields(fields(kv)).Warn(msg)
}

func Error(msg string, kv ...any) {
	log.WithFields(fields(kv)).Error(msg)
}

// fields turns key/value pairs into logrus fields. A lone error (logger.Error("x", err))
// is stored under "error", any other dangling value under "extra".
func fields(kv []any) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i < len(kv); i++ {
		key, ok := kv[i].(string)
		if !ok || i+1 >= len(kv) {
			if err, isErr := kv[i].(error); isErr {
				f["error"] = err.Error()
			} else if kv[i] != nil {
				f["extra"] = kv[i]
			}
			continue
		}
		val := kv[i+1]
		if err, isErr := val.(error); isErr && err != nil {
			val = err.Error()
		}
		f[key] = val
		i++
	}
	return f
}
