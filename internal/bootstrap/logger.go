package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/FleaMarket_Go/internal/config"
	"github.com/osse101/FleaMarket_Go/internal/logger"
)

// SetupLogger installs the default slog logger. With cfg.LogDir set, output also
// goes to a per-session file and old session files are pruned. The returned
// file, if any, must be closed by the caller.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	logCfg := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment)

	var (
		out     io.Writer = os.Stdout
		logFile *os.File
	)
	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
			return nil, fmt.Errorf(ErrMsgCreateLogsDirFmt, err)
		}
		cleanupLogs(cfg.LogDir, LogFileRetentionCount-1)

		name := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, time.Now().Format(LogFileTimestampFormat)))
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgOpenLogFileFmt, err)
		}
		logFile = f
		out = io.MultiWriter(os.Stdout, f)
	}

	logger.InitLoggerWithWriter(logCfg, out)

	slog.Info(LogMsgLoggingInitialized, "level", logCfg.LogLevel(), "format", cfg.LogFormat)
	slog.Info(LogMsgStarting, "environment", cfg.Environment, "version", cfg.Version)
	slog.Debug(LogMsgConfigurationLoaded,
		"db_driver", cfg.DBDriver,
		"port", cfg.Port,
		"config_root", cfg.RootDir,
		"workers", cfg.WorkerPoolSize)

	return logFile, nil
}

// cleanupLogs keeps the newest keep session logs. Names embed a sortable
// timestamp so lexical order is age order.
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), LogFileExtension) {
			names = append(names, e.Name())
		}
	}
	if len(names) <= keep {
		return
	}
	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(logDir, name)); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, "file", name, "error", err)
		}
	}
}
