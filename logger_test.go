package symnmf

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/symnmf/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level slog.Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level})), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogger_Fields(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelDebug)
	l = l.WithDataset("points.txt").WithK(3).WithCount(10).WithDimension(2).WithGoal(GoalNorm)

	l.LogScore(context.Background(), "nmf", 0.5, nil)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "silhouette computed", lines[0]["msg"])
	assert.Equal(t, "points.txt", lines[0]["dataset"])
	assert.Equal(t, float64(3), lines[0]["k"])
	assert.Equal(t, float64(10), lines[0]["count"])
	assert.Equal(t, float64(2), lines[0]["dimension"])
	assert.Equal(t, "norm", lines[0]["goal"])
	assert.Equal(t, 0.5, lines[0]["score"])
}

func TestLogger_Levels(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelInfo)
	ctx := context.Background()

	// Debug records are dropped at info level.
	l.LogLoad(ctx, "points.txt", 4, 2, nil)
	l.LogFactorize(ctx, 12, true, 1e-5, time.Millisecond, nil)

	l.LogFactorize(ctx, 300, false, 0.2, time.Millisecond, nil)
	l.LogKMeans(ctx, 0, false, 0, errs.Numerical("kmeans", "boom"))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "WARN", lines[0]["level"])
	assert.Equal(t, "factorization hit iteration cap", lines[0]["msg"])
	assert.Equal(t, "ERROR", lines[1]["level"])
	assert.Equal(t, "numerical", lines[1]["kind"])
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
	l.LogLoad(context.Background(), "x", 0, 0, errs.IO("x", nil, "missing"))
}
