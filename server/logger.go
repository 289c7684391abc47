package server

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"
)

// MCP logging levels in increasing severity
const (
	LevelDebug     schema.LoggingLevel = "debug"
	LevelInfo      schema.LoggingLevel = "info"
	LevelNotice    schema.LoggingLevel = "notice"
	LevelWarning   schema.LoggingLevel = "warning"
	LevelError     schema.LoggingLevel = "error"
	LevelCritical  schema.LoggingLevel = "critical"
	LevelAlert     schema.LoggingLevel = "alert"
	LevelEmergency schema.LoggingLevel = "emergency"
)

var levelOrdinals = map[schema.LoggingLevel]int{
	LevelDebug:     0,
	LevelInfo:      1,
	LevelNotice:    2,
	LevelWarning:   3,
	LevelError:     4,
	LevelCritical:  5,
	LevelAlert:     6,
	LevelEmergency: 7,
}

// ValidLevel returns true for a known MCP logging level
func ValidLevel(level schema.LoggingLevel) bool {
	_, ok := levelOrdinals[level]
	return ok
}

// Logger sends notifications/message to the client once it selected a level
type Logger struct {
	name     string
	mux      sync.RWMutex
	level    schema.LoggingLevel
	notifier transport.Notifier
}

// SetLevel sets the minimum level sent to the client
func (l *Logger) SetLevel(level schema.LoggingLevel) {
	l.mux.Lock()
	l.level = level
	l.mux.Unlock()
}

// Level returns the selected level, empty until the client sets one
func (l *Logger) Level() schema.LoggingLevel {
	l.mux.RLock()
	defer l.mux.RUnlock()
	return l.level
}

func (l *Logger) log(ctx context.Context, level schema.LoggingLevel, data any) error {
	selected := l.Level()
	if selected == "" || levelOrdinals[selected] > levelOrdinals[level] {
		return nil
	}
	notification := &jsonrpc.Notification{Method: schema.MethodNotificationMessage}
	params := schema.LoggingMessageNotificationParams{
		Level:  level,
		Logger: &l.name,
		Data:   data,
	}
	var err error
	notification.Params, err = json.Marshal(params)
	if err != nil {
		return err
	}
	return l.notifier.Notify(ctx, notification)
}

func (l *Logger) Debug(ctx context.Context, data interface{}) error {
	return l.log(ctx, LevelDebug, data)
}

func (l *Logger) Info(ctx context.Context, data interface{}) error {
	return l.log(ctx, LevelInfo, data)
}

func (l *Logger) Warning(ctx context.Context, data interface{}) error {
	return l.log(ctx, LevelWarning, data)
}

func (l *Logger) Error(ctx context.Context, data interface{}) error {
	return l.log(ctx, LevelError, data)
}

func NewLogger(name string, notifier transport.Notifier) *Logger {
	return &Logger{
		name:     name,
		notifier: notifier,
	}
}
