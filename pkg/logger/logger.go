package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	// Get log level from environment
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	// Create handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Create handler based on environment
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		// Use text handler for development (more readable)
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Use JSON handler for production (structured)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

var (
	defaultLogger *Logger
	defaultOnce   sync.Once
)

// GetDefault returns the process-wide logger, creating it on first use
func GetDefault() *Logger {
	defaultOnce.Do(func() {
		defaultLogger = New()
	})
	return defaultLogger
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("request_id", requestID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// WithFields adds multiple fields to logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
	)
}

// Checkout logging methods

// LogLayoutOriginFallback flags a seat catalog whose coordinate origin could
// not be matched against the reported grid size, for inspection upstream.
func (l *Logger) LogLayoutOriginFallback(ctx context.Context, tripID, deck string, minRow, minCol int) {
	l.Logger.WarnContext(ctx,
		"Seat Layout Origin Fallback",
		slog.String("trip_id", tripID),
		slog.String("deck", deck),
		slog.Int("min_row", minRow),
		slog.Int("min_col", minCol),
	)
}

// LogPaymentTransition logs a payment orchestration state change
func (l *Logger) LogPaymentTransition(ctx context.Context, paymentID, from, to string) {
	l.Logger.InfoContext(ctx,
		"Payment Transition",
		slog.String("payment_id", paymentID),
		slog.String("from", from),
		slog.String("to", to),
	)
}

// LogBookingConfirmed logs a confirmed booking
func (l *Logger) LogBookingConfirmed(ctx context.Context, bookingRef, tripID string, seatCount int) {
	l.Logger.InfoContext(ctx,
		"Booking Confirmed",
		slog.String("booking_ref", bookingRef),
		slog.String("trip_id", tripID),
		slog.Int("seat_count", seatCount),
	)
}

// LogDraftRecovered logs a draft rebuilt from the persistent seat backup
func (l *Logger) LogDraftRecovered(ctx context.Context, tripID string, seatCount int) {
	l.Logger.InfoContext(ctx,
		"Draft Recovered From Backup",
		slog.String("trip_id", tripID),
		slog.Int("seat_count", seatCount),
	)
}
