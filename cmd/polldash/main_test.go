package main

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRender(t *testing.T) {
	out := filepath.Join(t.TempDir(), "site")
	t.Setenv("ANALYSIS_FILE", "../../analysis/testdata/analysis_results.json")
	t.Setenv("OUTPUT_DIR", out)
	t.Setenv("LOG_LEVEL", "error")

	require.NoError(t, run(context.Background(), nil, strings.NewReader(""), &bytes.Buffer{}))
	assert.FileExists(t, filepath.Join(out, "index.html"))
	assert.FileExists(t, filepath.Join(out, "weekly.svg"))
}

func TestRunRender_PNGFlag(t *testing.T) {
	out := t.TempDir()
	t.Setenv("ANALYSIS_FILE", "../../analysis/testdata/analysis_results.json")
	t.Setenv("LOG_LEVEL", "error")

	args := []string{"render", "-out", out, "-format", "png"}
	require.NoError(t, run(context.Background(), args, strings.NewReader(""), &bytes.Buffer{}))
	assert.FileExists(t, filepath.Join(out, "weekly.png"))
}

func TestRunRender_MissingInput(t *testing.T) {
	t.Setenv("ANALYSIS_FILE", filepath.Join(t.TempDir(), "missing.json"))
	t.Setenv("OUTPUT_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "error")

	err := run(context.Background(), nil, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunQuiz(t *testing.T) {
	t.Setenv("UNANIMOUS_FILE", "../../analysis/testdata/unanimous_polls.json")
	t.Setenv("LOG_LEVEL", "error")

	var stdout bytes.Buffer
	args := []string{"quiz", "-n", "2"}
	require.NoError(t, run(context.Background(), args, strings.NewReader("1\n1\n"), &stdout))

	assert.Contains(t, stdout.String(), "1. ")
	assert.Contains(t, stdout.String(), "2. ")
	assert.Contains(t, stdout.String(), "/2\n")
}

func TestRunUnknownCommand(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	err := run(context.Background(), []string{"serve"}, strings.NewReader(""), &bytes.Buffer{})
	assert.EqualError(t, err, `unknown command "serve"`)
}

func TestReadChoice(t *testing.T) {
	options := []string{"Pizza", "Sushi"}
	scanner := bufio.NewScanner(strings.NewReader("2\nPizza\n9\n"))

	got, err := readChoice(scanner, options)
	require.NoError(t, err)
	assert.Equal(t, "Sushi", got)

	got, _ = readChoice(scanner, options)
	assert.Equal(t, "Pizza", got)

	got, _ = readChoice(scanner, options)
	assert.Empty(t, got)

	got, _ = readChoice(scanner, options)
	assert.Empty(t, got)
}
