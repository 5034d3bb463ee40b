package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-ecbasics/internal/config"
)

func TestRun(t *testing.T) {
	cfg, err := config.Load("ectiming", []string{
		"--curve=p256", "--bits=32", "--weights=2,30", "--samples=2", "--warmup=0",
		"--log.level=error",
	})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &out))
	assert.Contains(t, out.String(), "curve P-256")
	assert.Contains(t, out.String(), "double-and-add")
	assert.Contains(t, out.String(), "ladder")
	assert.Contains(t, out.String(), "high/low weight ratio")
}

func TestRunUnknownCurve(t *testing.T) {
	err := run(context.Background(), &config.Timing{Curve: "ed25519"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger(config.Log{Level: "debug", Format: "json"})
	require.NoError(t, err)
	_, err = newLogger(config.Log{Level: "nope"})
	assert.Error(t, err)
}
