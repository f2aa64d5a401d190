package interact

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

func TestDebugLogsCoastLifecycle(t *testing.T) {
	log, logs := observedLogger()
	c := NewController(Throwable, Vec2{100, 100}, DefaultConfig())
	c.SetLogger(log)

	t0 := time.Unix(100, 0)
	c.DragChanged(GestureSample{Time: t0})
	c.DragChanged(GestureSample{Translation: Vec2{50, 0}, Time: t0.Add(100 * time.Millisecond)})
	c.DragEnded(GestureSample{Translation: Vec2{50, 0}, Time: t0.Add(100 * time.Millisecond)})
	c.Close()

	for _, msg := range []string{"gesture began", "gesture ended", "coast started", "coast stopped"} {
		if logs.FilterMessage(msg).Len() == 0 {
			t.Errorf("missing %q log entry; got %d entries", msg, logs.Len())
		}
	}
}

func TestDebugCheckSizeOnlyWarnsWhenClamped(t *testing.T) {
	log, logs := observedLogger()
	debugCheckSize(log, "resize", Vec2{10, 10}, Vec2{10, 10})
	if logs.Len() != 0 {
		t.Fatalf("unclamped commit logged %d entries", logs.Len())
	}
	debugCheckSize(log, "resize", Vec2{-5, 10}, Vec2{1, 10})
	entries := logs.FilterMessage("size clamped").All()
	if len(entries) != 1 {
		t.Fatalf("expected one clamp warning, got %d", len(entries))
	}
	if entries[0].Level != zap.WarnLevel {
		t.Errorf("level = %v, want warn", entries[0].Level)
	}
}

func TestSetDebugModeInstallsLogger(t *testing.T) {
	c := NewController(Draggable, Vec2{10, 10}, DefaultConfig())
	c.SetDebugMode(true)
	if c.log == nil || c.log.Core().Enabled(zap.DebugLevel) == false {
		t.Error("debug mode should enable debug-level logging")
	}
	c.SetDebugMode(false)
	if c.log.Core().Enabled(zap.ErrorLevel) {
		t.Error("release mode should install a no-op logger")
	}
}
