package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	Log           *logrus.Logger
	logFile       *os.File
	lastRotation  time.Time
	rotationMutex sync.Mutex
)

func init() {
	Log = logrus.New()
	Log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	if os.Getenv("LOG_LEVEL") == "debug" {
		Log.SetLevel(logrus.DebugLevel)
	}

	if err := os.MkdirAll(logDir(), 0755); err != nil {
		Log.WithError(err).Fatal("Failed to create log directory")
	}

	rotateLog()

	// Start a goroutine to check for log rotation
	go checkRotation()
}

func logDir() string {
	if dir := os.Getenv("LOG_DIR"); dir != "" {
		return dir
	}
	return "logs"
}

func rotateLog() {
	rotationMutex.Lock()
	defer rotationMutex.Unlock()

	if logFile != nil {
		logFile.Close()
	}

	logFileName := filepath.Join(logDir(), time.Now().Format("2006-01-02")+".txt")
	newLogFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		Log.WithError(err).Fatal("Failed to open new log file")
	}

	logFile = newLogFile
	Log.SetOutput(io.MultiWriter(os.Stdout, logFile))
	lastRotation = time.Now()
}

func checkRotation() {
	for {
		time.Sleep(1 * time.Hour) // Check every hour

		if time.Now().YearDay() != lastRotation.YearDay() {
			rotateLog()
			Log.Info("Log file rotated")
		}
	}
}
