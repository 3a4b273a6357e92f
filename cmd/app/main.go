// Image Augmentation Visualizer
// Pick an image, chain augmentations and inspect every intermediate result

package main

import (
	"flag"
	"os"
	"runtime"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"

	"image-augmentation-visualizer/internal/config"
	"image-augmentation-visualizer/internal/gui"
)

const (
	AppName    = "Image Augmentation Visualizer"
	AppID      = "com.example.image-augmentation-visualizer"
	AppVersion = "1.0.0"
)

func main() {
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	configPath := flag.String("config", config.DefaultFileName, "Path to the YAML config file")
	writeConfig := flag.Bool("mkconf", false, "Write the effective config to -config and exit")
	flag.Parse()

	logger := initLogger(*debugMode)
	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": *debugMode,
		"config":     *configPath,
	}).Info("Starting " + AppName)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if *writeConfig {
		if err := cfg.Write(*configPath); err != nil {
			logger.WithError(err).Fatal("Failed to write configuration")
		}
		logger.WithField("path", *configPath).Info("Configuration written")
		return
	}

	myApp := app.NewWithID(AppID)
	myApp.SetIcon(theme.DocumentIcon())
	myApp.Settings().SetTheme(theme.DefaultTheme())

	mainApp := gui.NewApplication(myApp, cfg, logger)
	mainApp.ShowAndRun()

	if *debugMode {
		logMemorySummary(logger)
	}
	logger.Info("Application shutting down gracefully")
	os.Exit(0)
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}

// logMemorySummary reports heap usage after the window closes; stage images
// are held in Go memory and large uploads show up here
func logMemorySummary(logger logrus.FieldLogger) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	logger.WithFields(logrus.Fields{
		"alloc_mb":       float64(m.Alloc) / 1024 / 1024,
		"total_alloc_mb": float64(m.TotalAlloc) / 1024 / 1024,
		"sys_mb":         float64(m.Sys) / 1024 / 1024,
		"num_gc":         m.NumGC,
	}).Debug("Memory summary")
}
