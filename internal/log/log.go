// Package log is the application logger: leveled messages with key/value
// fields, written to stderr through logrus.
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newLogger(os.Stderr)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000000Z07:00",
	})
	return l
}

// SetLevel sets the minimum level by name: debug, info, warn or error.
func SetLevel(name string) error {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	logger.SetLevel(lvl)
	return nil
}

// SetOutput redirects all further output to w.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func Debug(msg string, kv ...any) {
	logger.WithFields(fields(kv)).Debug(msg)
}

func Info(msg string, kv ...any) {
	logger.WithFields(fields(kv)).Info(msg)
}

func Warn(msg string, kv ...any) {
	logger.WithFields(fields(kv)).Warn(msg)
}

// Error logs msg with err attached under the "error" key.
func Error(msg string, err error, kv ...any) {
	logger.WithFields(fields(kv)).WithError(err).Error(msg)
}

// fields turns key, value, key, value, ... into logrus fields. Non-string
// keys are formatted with fmt.Sprint and a trailing key without a value is
// dropped.
func fields(kv []any) logrus.Fields {
	f := make(logrus.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		f[key] = kv[i+1]
	}
	return f
}
