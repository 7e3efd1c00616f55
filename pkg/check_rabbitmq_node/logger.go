package check_rabbitmq_node

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kdar/factorlog"
)

// define all available log level.
const (
	// LogVerbosityNone disables logging.
	LogVerbosityNone = 0

	// LogVerbosityDefault sets the default log level.
	LogVerbosityDefault = 1

	// LogVerbosityDebug sets the debug log level.
	LogVerbosityDebug = 2

	// LogVerbosityTrace sets trace log level.
	LogVerbosityTrace = 3
)

var LogFormat = `[%{Date} %{Time "15:04:05.000"}][%{Severity}][pid:%{Pid}][%{ShortFile}:%{Line}] %{Message}`

// newLogger returns a logger writing to output, level is one of off, error, info, debug or trace.
func newLogger(output io.Writer, level string) (*factorlog.FactorLog, error) {
	logger := factorlog.New(output, BuildFormatter(LogFormat))
	if err := setLogLevel(logger, level); err != nil {
		return nil, err
	}

	return logger, nil
}

func setLogLevel(logger *factorlog.FactorLog, level string) error {
	switch strings.ToLower(level) {
	case "off", "":
		logger.SetMinMaxSeverity(factorlog.StringToSeverity("PANIC"), factorlog.StringToSeverity("PANIC"))
		logger.SetVerbosity(LogVerbosityNone)
	case "error", "info":
		logger.SetMinMaxSeverity(factorlog.StringToSeverity(strings.ToUpper(level)), factorlog.StringToSeverity("PANIC"))
		logger.SetVerbosity(LogVerbosityDefault)
	case "debug":
		logger.SetMinMaxSeverity(factorlog.StringToSeverity("DEBUG"), factorlog.StringToSeverity("PANIC"))
		logger.SetVerbosity(LogVerbosityDebug)
	case "trace":
		logger.SetMinMaxSeverity(factorlog.StringToSeverity("TRACE"), factorlog.StringToSeverity("PANIC"))
		logger.SetVerbosity(LogVerbosityTrace)
	default:
		return fmt.Errorf("unknown log level: %s", level)
	}

	return nil
}

// BuildFormatter returns a factorlog formatter with %{Pid} already expanded.
func BuildFormatter(format string) *factorlog.StdFormatter {
	format = strings.ReplaceAll(format, "%{Pid}", fmt.Sprintf("%d", os.Getpid()))

	return factorlog.NewStdFormatter(format)
}
