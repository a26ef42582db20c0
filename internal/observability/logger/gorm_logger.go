package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// GormLoggerConfig configures SQL logging thresholds.
type GormLoggerConfig struct {
	Level                gormlogger.LogLevel
	SlowThreshold        time.Duration
	IgnoreRecordNotFound bool
	MaxQueryLength       int
}

func DefaultGormLoggerConfig() GormLoggerConfig {
	return GormLoggerConfig{
		Level:                gormlogger.Warn,
		SlowThreshold:        200 * time.Millisecond,
		IgnoreRecordNotFound: true,
		MaxQueryLength:       2048,
	}
}

// GormLogger routes GORM output through the context-aware zap logger so SQL
// lines carry the same correlation fields as the request that issued them.
type GormLogger struct {
	cfg GormLoggerConfig
}

func NewGormLogger(cfg GormLoggerConfig) *GormLogger {
	return &GormLogger{cfg: cfg}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.cfg.Level = level
	return &next
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.cfg.Level >= gormlogger.Info {
		FromContext(ctx).Info(msg, l.dataFields(data)...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.cfg.Level >= gormlogger.Warn {
		FromContext(ctx).Warn(msg, l.dataFields(data)...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.cfg.Level >= gormlogger.Error {
		FromContext(ctx).Error(msg, l.dataFields(data)...)
	}
}

func (l *GormLogger) dataFields(data []interface{}) []zap.Field {
	fields := []zap.Field{zap.String("component", "gorm")}
	if len(data) > 0 {
		fields = append(fields, zap.Any("data", data))
	}
	return fields
}

// Trace logs completed statements. Errors win over slow-query warnings;
// record-not-found is routine control flow and stays quiet by default.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.cfg.Level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	notFound := errors.Is(err, gormlogger.ErrRecordNotFound)

	switch {
	case err != nil && l.cfg.Level >= gormlogger.Error && !(notFound && l.cfg.IgnoreRecordNotFound):
		l.emit(ctx, fc, elapsed, err, func(log *zap.Logger, msg string, fields []zap.Field) { log.Error(msg, fields...) })
	case l.cfg.SlowThreshold > 0 && elapsed > l.cfg.SlowThreshold && l.cfg.Level >= gormlogger.Warn:
		l.emit(ctx, fc, elapsed, nil, func(log *zap.Logger, msg string, fields []zap.Field) { log.Warn(msg, fields...) })
	case l.cfg.Level >= gormlogger.Info:
		l.emit(ctx, fc, elapsed, nil, func(log *zap.Logger, msg string, fields []zap.Field) { log.Debug(msg, fields...) })
	}
}

// ParamsFilter drops bound values so credentials and payload bags never
// reach the logs.
func (l *GormLogger) ParamsFilter(ctx context.Context, sql string, params ...interface{}) (string, []interface{}) {
	_ = ctx
	_ = params
	return sql, nil
}

func (l *GormLogger) emit(ctx context.Context, fc func() (string, int64), elapsed time.Duration, err error, write func(*zap.Logger, string, []zap.Field)) {
	sql, rows := fc()
	sql = strings.TrimSpace(sql)
	if l.cfg.MaxQueryLength > 0 && len(sql) > l.cfg.MaxQueryLength {
		sql = sql[:l.cfg.MaxQueryLength] + "..."
	}

	fields := []zap.Field{
		zap.String("component", "gorm"),
		zap.String("sql", sql),
		zap.Int64("duration_ms", elapsed.Milliseconds()),
	}
	if rows >= 0 {
		fields = append(fields, zap.Int64("rows_affected", rows))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}

	write(FromContext(ctx), "gorm.query", fields)
}

var _ gormlogger.Interface = (*GormLogger)(nil)
