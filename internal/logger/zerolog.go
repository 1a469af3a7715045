package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Identity tags every entry written by a logger.
type Identity struct {
	App     string
	Version string
}

type ZerologAdapter struct {
	logger zerolog.Logger
}

func NewZerolog(writer io.Writer, level zerolog.Level, id Identity) *ZerologAdapter {
	ctx := zerolog.New(writer).
		Level(level).
		With().
		Timestamp()

	if id.App != "" {
		ctx = ctx.Str("app", id.App)
	}
	if id.Version != "" {
		ctx = ctx.Str("version", id.Version)
	}

	return &ZerologAdapter{logger: ctx.Logger()}
}

// NewConsoleLogger writes human readable lines to stderr, keeping stdout free
// for the run summary.
func NewConsoleLogger(level zerolog.Level, id Identity) *ZerologAdapter {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return NewZerolog(consoleWriter, level, id)
}

func NewNop() *ZerologAdapter {
	return &ZerologAdapter{logger: zerolog.Nop()}
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	withFields(z.logger.Info(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Error(component string, err error, fields map[string]interface{}) {
	withFields(z.logger.Error().Err(err), component, fields).Msg("operation failed")
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	withFields(z.logger.Warn(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	withFields(z.logger.Debug(), component, fields).Msg(message)
}

// withFields is safe on the nil event zerolog returns for disabled levels.
func withFields(event *zerolog.Event, component string, fields map[string]interface{}) *zerolog.Event {
	event = event.Str("component", component)
	if len(fields) > 0 {
		event = event.Fields(fields)
	}
	return event
}
