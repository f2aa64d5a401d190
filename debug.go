package interact

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newDebugLogger returns the development logger installed by SetDebugMode.
// Falls back to a no-op logger if zap cannot open stderr.
func newDebugLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l.Named("interact")
}

// MarshalLogObject lets a Vec2 be logged with zap.Object.
func (v Vec2) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddFloat64("x", v.X)
	enc.AddFloat64("y", v.Y)
	return nil
}

func vecField(key string, v Vec2) zap.Field { return zap.Object(key, v) }

// debugCheckSize warns when a commit had to clamp the element size.
func debugCheckSize(log *zap.Logger, op string, requested, got Vec2) {
	if requested == got {
		return
	}
	log.Warn("size clamped",
		zap.String("op", op),
		vecField("requested", requested),
		vecField("size", got))
}
