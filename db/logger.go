package db

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	dbLogger "gorm.io/gorm/logger"
)

var _ dbLogger.Interface = (*logger)(nil)

const slowQueryThreshold = 200 * time.Millisecond

var levels = map[dbLogger.LogLevel]zapcore.Level{
	dbLogger.Silent: zapcore.FatalLevel,
	dbLogger.Error:  zapcore.ErrorLevel,
	dbLogger.Warn:   zapcore.WarnLevel,
	dbLogger.Info:   zapcore.DebugLevel,
}

// logger routes gorm output through zap. Its level is independent of the root
// logger so db.Debug() sessions do not change process wide verbosity.
type logger struct {
	logger *zap.Logger
	level  zapcore.LevelEnabler
}

func (l logger) LogMode(level dbLogger.LogLevel) dbLogger.Interface {
	if zapLevel, ok := levels[level]; ok {
		l.level = zapLevel
		return l
	}

	l.logger.Warn("invalid gorm log level", zap.Int("level", int(level)))
	return l
}

func (l logger) Info(ctx context.Context, s string, i ...interface{}) {
	l.logger.Info(s, interfacesToFields(i...)...)
}

func (l logger) Warn(ctx context.Context, s string, i ...interface{}) {
	l.logger.Warn(s, interfacesToFields(i...)...)
}

func (l logger) Error(ctx context.Context, s string, i ...interface{}) {
	l.logger.Error(s, interfacesToFields(i...)...)
}

func (l logger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := time.Since(begin)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level.Enabled(zapcore.ErrorLevel):
		sql, rowsAffected := fc()
		l.logger.Error("query failed",
			zap.String("sql", sql),
			zap.Int64("rows_affected", rowsAffected),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
	case elapsed > slowQueryThreshold && l.level.Enabled(zapcore.WarnLevel):
		sql, rowsAffected := fc()
		l.logger.Warn("slow query",
			zap.String("sql", sql),
			zap.Int64("rows_affected", rowsAffected),
			zap.Duration("elapsed", elapsed))
	case l.level.Enabled(zapcore.DebugLevel):
		sql, rowsAffected := fc()
		l.logger.Debug("trace",
			zap.String("sql", sql),
			zap.Int64("rows_affected", rowsAffected),
			zap.Duration("elapsed", elapsed))
	}
}

func newLogger(zlog *zap.Logger, zlogLevel *zap.AtomicLevel) *logger {
	return &logger{logger: zlog.Named("db"), level: zlogLevel}
}

func interfacesToFields(i ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(i))
	for idx, v := range i {
		fields = append(fields, zap.Any(strconv.Itoa(idx), v))
	}
	return fields
}
