package logger

import (
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/greenhouse-labs/catalog/internal/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// PerformanceConfig tunes the builder-style logger
type PerformanceConfig struct {
	MinLogLevel     zapcore.Level `json:"min_log_level"`
	EnableSampling  bool          `json:"enable_sampling"`
	SamplingFirst   int           `json:"sampling_first"`
	MaxLogPerSecond int           `json:"max_log_per_second"`
	EnableRateLimit bool          `json:"enable_rate_limit"`
}

// DefaultPerformanceConfig default config
func DefaultPerformanceConfig() PerformanceConfig {
	return PerformanceConfig{
		MinLogLevel:     zapcore.InfoLevel,
		MaxLogPerSecond: 1000,
	}
}

// ProductionConfig config for production
func ProductionConfig() PerformanceConfig {
	return PerformanceConfig{
		MinLogLevel:     zapcore.InfoLevel,
		EnableSampling:  true,
		SamplingFirst:   100,
		MaxLogPerSecond: 500,
		EnableRateLimit: true,
	}
}

// DevelopmentConfig config for development
func DevelopmentConfig() PerformanceConfig {
	return PerformanceConfig{
		MinLogLevel:     zapcore.DebugLevel,
		MaxLogPerSecond: 10000,
	}
}

// PerformanceConfigFor picks the preset matching a minimum level.
func PerformanceConfigFor(level zapcore.Level) PerformanceConfig {
	if level <= zapcore.DebugLevel {
		return DevelopmentConfig()
	}
	cfg := ProductionConfig()
	cfg.MinLogLevel = level
	return cfg
}

// OptimizedLogger skips field construction for disabled levels
type OptimizedLogger struct {
	config      PerformanceConfig
	logger      *zap.Logger
	rateLimiter *RateLimiter
}

// RateLimiter limits the number of log lines per second
type RateLimiter struct {
	maxLogs   int
	current   int
	lastReset time.Time
	mu        sync.Mutex
}

func NewRateLimiter(maxLogs int) *RateLimiter {
	return &RateLimiter{
		maxLogs:   maxLogs,
		lastReset: time.Now(),
	}
}

func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastReset) >= time.Second {
		rl.current = 0
		rl.lastReset = now
	}

	if rl.current >= rl.maxLogs {
		return false
	}

	rl.current++
	return true
}

// NewOptimizedLogger builds a stdout JSON logger for config
func NewOptimizedLogger(config PerformanceConfig) (*OptimizedLogger, error) {
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(config.MinLogLevel)
	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	zapConfig.EncoderConfig.TimeKey = "timestamp"
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	zapConfig.DisableStacktrace = true
	zapConfig.Sampling = nil

	zapLogger, err := zapConfig.Build(zap.WithCaller(false))
	if err != nil {
		return nil, err
	}

	return newOptimizedLoggerFrom(zapLogger, config), nil
}

func newOptimizedLoggerFrom(zapLogger *zap.Logger, config PerformanceConfig) *OptimizedLogger {
	if config.EnableSampling && config.SamplingFirst > 0 {
		zapLogger = zapLogger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewSamplerWithOptions(core, time.Second, config.SamplingFirst, config.SamplingFirst)
		}))
	}

	return &OptimizedLogger{
		config:      config,
		logger:      zapLogger,
		rateLimiter: NewRateLimiter(config.MaxLogPerSecond),
	}
}

// ShouldLog reports whether a line at level would be written
func (ol *OptimizedLogger) ShouldLog(level zapcore.Level) bool {
	if level < ol.config.MinLogLevel {
		return false
	}

	if ol.config.EnableRateLimit && !ol.rateLimiter.Allow() {
		return false
	}

	return true
}

var optimizedLogger atomic.Pointer[OptimizedLogger]

func setOptimizedLogger(l *OptimizedLogger) {
	optimizedLogger.Store(l)
}

// GetOptimizedLogger returns the global builder logger, creating a default one
// from GO_ENV when InitLogger has not run.
func GetOptimizedLogger() *OptimizedLogger {
	if l := optimizedLogger.Load(); l != nil {
		return l
	}

	config := DefaultPerformanceConfig()
	switch os.Getenv("GO_ENV") {
	case constants.EnvProduction:
		config = ProductionConfig()
	case constants.EnvDevelopment:
		config = DevelopmentConfig()
	}

	l, err := NewOptimizedLogger(config)
	if err != nil {
		l = newOptimizedLoggerFrom(zap.NewNop(), config)
	}

	if optimizedLogger.CompareAndSwap(nil, l) {
		return l
	}
	return optimizedLogger.Load()
}
