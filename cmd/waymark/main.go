package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/lorescape/waymark/internal/cache"
	"github.com/lorescape/waymark/internal/config"
	"github.com/lorescape/waymark/internal/dispatcher"
	"github.com/lorescape/waymark/internal/kv"
	"github.com/lorescape/waymark/internal/logging"
	"github.com/lorescape/waymark/internal/mode"
	"github.com/lorescape/waymark/internal/model"
	"github.com/lorescape/waymark/internal/notify"
	"github.com/lorescape/waymark/internal/queue"
	"github.com/lorescape/waymark/internal/store"
	"github.com/lorescape/waymark/internal/tui"
)

const appName = "waymark"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configDir := "."
	if dir := os.Getenv("WAYMARK_CONFIG_DIR"); dir != "" {
		configDir = dir
	}
	configErr := config.Load(configDir)

	// Log to a session file; stdout belongs to the TUI.
	var logFile io.Writer
	logsDir := config.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err == nil {
		if f, err := os.Create(logging.LogFilePath(logsDir, appName, time.Now())); err == nil {
			defer f.Close()
			logFile = f
		}
	}

	var modes *mode.Controller
	slogMgr := logging.NewManager()
	slogMgr.Setup(logFile, config.GetString("logLevel"), func() []slog.Attr {
		if modes == nil {
			return nil
		}
		return []slog.Attr{slog.String("mode", modes.Mode().String())}
	})
	logger := slogMgr.Logger()

	if configErr != nil {
		logger.Warn("Config not loaded, using defaults", "error", configErr)
	}

	storageCfg := config.GetStorageConfig()
	kvs, err := kv.Open(storageCfg)
	if err != nil {
		logger.Warn("Storage unavailable, falling back to file storage", "type", storageCfg.Type, "error", err)
		kvs, err = kv.Open(config.StorageConfig{Type: "file", Dir: storageCfg.Dir})
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
	}
	defer kvs.Close()

	// export files land next to the stored data
	if err := os.MkdirAll(storageCfg.Dir, 0755); err != nil {
		logger.Warn("Cannot create data directory, exports may fail", "dir", storageCfg.Dir, "error", err)
	}

	ids := cache.NewIDRegistry()
	markers := store.New(store.Markers(), kvs, ids, logger)
	routes := store.New(store.Routes(), kvs, ids, logger)
	modes = mode.NewController(logger)

	notes := notify.NewCenter(config.GetNotifyDismissAfter(), nil, logger)
	defer notes.Close()
	dialogs := notify.NewDialogs(notes)

	markerDialogs := queue.New[model.Point]()
	finishedRoutes := queue.New[[]model.Point]()

	zlOut := logFile
	if zlOut == nil {
		zlOut = io.Discard
	}
	zl := zerolog.New(zlOut).With().Timestamp().Logger()
	disp, err := dispatcher.New(modes, dispatcher.Callbacks{
		OpenMarkerDialog: func(p model.Point) { markerDialogs.Push(p) },
		RouteFinished:    func(path []model.Point) { finishedRoutes.Push(path) },
	}, logging.NewInteractionLogger(zl))
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}

	m := tui.New(tui.Deps{
		Markers:        markers,
		Routes:         routes,
		Modes:          modes,
		Disp:           disp,
		Notes:          notes,
		Dialogs:        dialogs,
		UI:             config.GetUIConfig(),
		DataDir:        storageCfg.Dir,
		Logger:         logger,
		MarkerDialogs:  markerDialogs,
		FinishedRoutes: finishedRoutes,
	})

	logger.Info("Starting waymark", "storage", storageCfg.Type)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		return fmt.Errorf("ui error: %w", err)
	}
	logger.Info("Shutting down")
	return nil
}
