package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":    DEBUG,
		"INFO":     INFO,
		"":         INFO,
		"warning":  WARN,
		"error":    ERROR,
		"critical": FATAL,
	}
	for name, want := range cases {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init()
	SetOutput(&buf)
	SetLevel(WARN)
	defer SetLevel(INFO)

	Infof("descartada %d", 1)
	Warnf("mantida %d", 2)

	out := buf.String()
	assert.False(t, strings.Contains(out, "descartada"))
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "mantida 2")
	assert.Contains(t, out, "logger_test.go")
}

func TestWithAppendsFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Init()

	With("request_id", "abc").With("points", 120).Infof("traço %s", "recebido")

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, "INFO ")
	assert.True(t, strings.HasSuffix(line, "traço recebido request_id=abc points=120"), line)
}

func TestFatalExits(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Init()

	code := -1
	exit = func(c int) { code = c }
	defer func() { exit = os.Exit }()

	Fatal("falha ao iniciar", errors.New("porta em uso"))

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "FATAL")
	assert.Contains(t, buf.String(), "falha ao iniciar: porta em uso")
}

func TestFileLogging(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Init()

	dir := t.TempDir()
	require.NoError(t, EnableFileLogging(dir, "teste"))
	Info("no arquivo")
	Error("falhou", nil)
	Sync()

	logs, err := filepath.Glob(filepath.Join(dir, "teste_*_error.log"))
	require.NoError(t, err)
	require.Len(t, logs, 1)
	data, err := os.ReadFile(logs[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "falhou")
	assert.NotContains(t, string(data), "no arquivo")

	assert.Contains(t, buf.String(), "no arquivo")
}
