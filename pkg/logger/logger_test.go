package logger

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContextFallback(t *testing.T) {
	ctx := context.Background()
	entry := FromContext(ctx)
	require.NotNil(t, entry)
	assert.Equal(t, L.Logger, entry.Logger)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetLevel(logrus.DebugLevel)

	ctx := WithLogger(context.Background(), base.WithField("component", "scanner"))
	G(ctx).Debug("scanning agents")

	assert.Contains(t, buf.String(), "scanning agents")
	assert.Contains(t, buf.String(), "component=scanner")
}

func TestSetLevel(t *testing.T) {
	require.NoError(t, SetLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())

	require.NoError(t, SetLevel("warn"))
	assert.Equal(t, logrus.WarnLevel, L.Logger.GetLevel())

	assert.Error(t, SetLevel("not-a-level"))
}

func TestSetFormat(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetFormat("json")
	L.Warn("json format test")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(buf.String()), "{"))

	buf.Reset()
	SetFormat("text")
	L.Warn("text format test")
	assert.Contains(t, buf.String(), "text format test")
}
