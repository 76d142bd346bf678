package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Entry = logrus.Entry

type Fields = logrus.Fields

// Init настраивает JSON-логирование в stdout. DEBUG=true включает отладочный уровень,
// LOG_FORMAT=text переключает на текстовый формат для запуска из терминала.
func Init() {
	InitWithOutput(os.Stdout)
}

// InitWithOutput: то же, что Init, но с произвольным выводом (используется в тестах).
func InitWithOutput(out io.Writer) {
	if os.Getenv("LOG_FORMAT") == "text" {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	}

	Log.SetOutput(out)

	if os.Getenv("DEBUG") == "true" {
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(logrus.InfoLevel)
	}
}

// Component возвращает запись лога с полем component.
func Component(name string) *Entry {
	return Log.WithField("component", name)
}
