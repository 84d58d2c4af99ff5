package database

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newCapturingLogger(debug bool, slow time.Duration) (*bytes.Buffer, logger.Interface) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return &buf, newGormSlogLogger(base, debug, slow)
}

func query() (string, int64) { return "SELECT * FROM orders", 3 }

func TestGormSlogLogger_Trace(t *testing.T) {
	ctx := context.Background()

	t.Run("record not found is quiet", func(t *testing.T) {
		buf, l := newCapturingLogger(false, time.Second)
		l.Trace(ctx, time.Now(), query, gorm.ErrRecordNotFound)
		assert.Empty(t, buf.String())
	})

	t.Run("failure logs at error", func(t *testing.T) {
		buf, l := newCapturingLogger(false, time.Second)
		l.Trace(ctx, time.Now(), query, errors.New("disk full"))
		out := buf.String()
		assert.Contains(t, out, "level=ERROR")
		assert.Contains(t, out, "disk full")
		assert.Contains(t, out, "component=gorm")
	})

	t.Run("slow query logs at warn", func(t *testing.T) {
		buf, l := newCapturingLogger(false, time.Millisecond)
		l.Trace(ctx, time.Now().Add(-time.Second), query, nil)
		out := buf.String()
		assert.Contains(t, out, "level=WARN")
		assert.Contains(t, out, "slow_threshold=1ms")
	})

	t.Run("fast query only in debug", func(t *testing.T) {
		buf, l := newCapturingLogger(false, time.Second)
		l.Trace(ctx, time.Now(), query, nil)
		assert.Empty(t, buf.String())

		buf, l = newCapturingLogger(true, time.Second)
		l.Trace(ctx, time.Now(), query, nil)
		assert.Contains(t, buf.String(), "rows=3")
	})

	t.Run("silent mode", func(t *testing.T) {
		buf, l := newCapturingLogger(true, time.Second)
		l.LogMode(logger.Silent).Trace(ctx, time.Now(), query, errors.New("boom"))
		assert.Empty(t, buf.String())
	})
}
