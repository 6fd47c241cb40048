package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init builds the JSON structured logger. When filePath is set, output goes
// through a size-rotated file; otherwise it goes to stderr so captured
// content on stdout stays machine-readable.
func Init(level string, filePath string, maxSizeMB int, maxBackups int) (*logrus.Logger, error) {
	parsedLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("cannot parse log level: %w", err)
	}

	output, outErr := buildOutput(filePath, maxSizeMB, maxBackups)

	logger := logrus.New()
	logger.SetLevel(parsedLevel)
	logger.SetOutput(output)
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})

	if outErr != nil {
		logger.WithFields(logrus.Fields{
			"action": "logger_fallback",
			"path":   filePath,
		}).Warn(outErr.Error())
	}

	return logger, nil
}

// buildOutput creates the log writer; on failure it degrades to stderr and
// reports the error so Init can record the fallback.
func buildOutput(filePath string, maxSizeMB int, maxBackups int) (io.Writer, error) {
	if filePath == "" {
		return os.Stderr, nil
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return os.Stderr, fmt.Errorf("creating log directory failed: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		LocalTime:  true,
	}
	return rotator, nil
}
