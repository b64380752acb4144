package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// LogFilePrefix is the stem of dated log files, the suffix is the date
const LogFilePrefix = "tatibot.log."

// LogDateLayout is the date embedded in log filenames
const LogDateLayout = "2006-01-02"

type LogrusFileHook struct {
	file      *os.File
	flag      int
	chmod     os.FileMode
	formatter *logrus.JSONFormatter
}

func NewLogrusFileHook(file string, flag int, chmod os.FileMode) (*LogrusFileHook, error) {
	jsonFormatter := &logrus.JSONFormatter{}
	logFile, err := os.OpenFile(file, flag, chmod)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to write file on filehook %v", err)
		return nil, err
	}

	return &LogrusFileHook{logFile, flag, chmod, jsonFormatter}, err
}

// NewDatedFileHook opens a hook writing to $dir with today's date in
// the filename, which is what the log retention job keys on
func NewDatedFileHook(dir string) (*LogrusFileHook, error) {
	name := LogFilePrefix + time.Now().Format(LogDateLayout)
	return NewLogrusFileHook(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

// ParseLogDate extracts the date from a dated log filename
func ParseLogDate(name string) (time.Time, error) {
	return time.Parse(LogDateLayout, name[len(LogFilePrefix):])
}

// IsDatedLogFile reports whether $name looks like one of our log files
func IsDatedLogFile(name string) bool {
	return len(name) > len(LogFilePrefix) && name[:len(LogFilePrefix)] == LogFilePrefix
}

// Fire event
func (hook *LogrusFileHook) Fire(entry *logrus.Entry) error {
	plainformat, err := hook.formatter.Format(entry)
	if err != nil {
		return err
	}

	_, err = hook.file.WriteString(string(plainformat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to write file on filehook(entry.String)%v", err)
		return err
	}

	return nil
}

func (hook *LogrusFileHook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
		logrus.WarnLevel,
		logrus.InfoLevel,
		logrus.DebugLevel,
	}
}
