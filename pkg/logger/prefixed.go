package logger

import "fmt"

// PrefixedLogger помечает сообщения префиксом и добавляет постоянные атрибуты
// (например, id сессии или адрес websocket-клиента).
type PrefixedLogger struct {
	inner  Logger
	prefix string
	attrs  []any
}

func NewPrefixedLogger(inner Logger, prefix string, attrs ...any) *PrefixedLogger {
	return &PrefixedLogger{
		inner:  inner,
		prefix: prefix,
		attrs:  attrs,
	}
}

func (p *PrefixedLogger) prefixed(msg string) string {
	return fmt.Sprintf("[%s] %s", p.prefix, msg)
}

func (p *PrefixedLogger) args(args []any) []any {
	if len(p.attrs) == 0 {
		return args
	}
	return append(append(make([]any, 0, len(p.attrs)+len(args)), p.attrs...), args...)
}

func (p *PrefixedLogger) SetLogLevel(levelStr string) {
	p.inner.SetLogLevel(levelStr)
}

func (p *PrefixedLogger) GetLogLevel() string {
	return p.inner.GetLogLevel()
}

func (p *PrefixedLogger) Trace(msg string, args ...any) {
	p.inner.Trace(p.prefixed(msg), p.args(args)...)
}

func (p *PrefixedLogger) Debug(msg string, args ...any) {
	p.inner.Debug(p.prefixed(msg), p.args(args)...)
}

func (p *PrefixedLogger) Info(msg string, args ...any) {
	p.inner.Info(p.prefixed(msg), p.args(args)...)
}

func (p *PrefixedLogger) Warn(msg string, args ...any) {
	p.inner.Warn(p.prefixed(msg), p.args(args)...)
}

func (p *PrefixedLogger) Error(msg string, err error, args ...any) {
	p.inner.Error(p.prefixed(msg), err, p.args(args)...)
}

func (p *PrefixedLogger) Fatal(msg string, err error, args ...any) {
	p.inner.Fatal(p.prefixed(msg), err, p.args(args)...)
}
