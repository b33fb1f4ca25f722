package launcher

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/log"
	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
)

// setupLogging configures the go-ethereum root logger used by the library
// packages and returns the operator logger of the launcher itself.
func setupLogging(cfg LoggingConfig, out io.Writer) (*logrus.Logger, error) {
	if cfg.Verbosity < int(log.LvlCrit) || cfg.Verbosity > int(log.LvlTrace) {
		return nil, fmt.Errorf("log.verbosity %d out of range 0..5", cfg.Verbosity)
	}

	var format log.Format
	operator := logrus.New()
	operator.Out = out

	switch cfg.Format {
	case "text", "":
		format = log.TerminalFormat(cfg.Color)
		operator.Formatter = &logrus.TextFormatter{ForceColors: cfg.Color, DisableColors: !cfg.Color, FullTimestamp: true}
	case "json":
		format = log.JSONFormat()
		operator.Formatter = &logrus.JSONFormatter{}
	default:
		return nil, fmt.Errorf("unknown log.format %q (text|json)", cfg.Format)
	}
	log.Root().SetHandler(log.LvlFilterHandler(log.Lvl(cfg.Verbosity), log.StreamHandler(out, format)))
	operator.Level = logrusLevel(cfg.Verbosity)

	if cfg.SentryDSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.SentryDSN, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return nil, fmt.Errorf("sentry hook: %w", err)
		}
		operator.Hooks.Add(hook)
	}
	return operator, nil
}

// logrusLevel maps the go-ethereum verbosity scale onto logrus levels.
func logrusLevel(verbosity int) logrus.Level {
	switch log.Lvl(verbosity) {
	case log.LvlCrit:
		return logrus.FatalLevel
	case log.LvlError:
		return logrus.ErrorLevel
	case log.LvlWarn:
		return logrus.WarnLevel
	case log.LvlInfo:
		return logrus.InfoLevel
	case log.LvlDebug:
		return logrus.DebugLevel
	}
	return logrus.TraceLevel
}
