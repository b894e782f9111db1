package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"griddle/config"

	"github.com/stretchr/testify/assert"
)

func captureOutput(f func()) string {
	var buf bytes.Buffer
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	done := make(chan bool)
	go func() {
		_, _ = io.Copy(&buf, r)
		done <- true
	}()

	f()
	_ = w.Close()
	os.Stdout = oldStdout
	<-done

	return buf.String()
}

func callMain() (int, string) {
	var exitCode int
	oldExit := exit
	defer func() { exit = oldExit }()
	exit = func(code int) {
		exitCode = code
	}

	output := captureOutput(RealMain)
	return exitCode, output
}

func TestCLICommands(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	tests := []struct {
		name           string
		args           []string
		expectedExit   int
		expectedOutput string
	}{
		{
			name:           "no arguments",
			args:           []string{"griddle"},
			expectedExit:   1,
			expectedOutput: "Usage: griddle <command>",
		},
		{
			name:           "help command",
			args:           []string{"griddle", "help"},
			expectedExit:   0,
			expectedOutput: "Usage: griddle <command>",
		},
		{
			name:           "version command",
			args:           []string{"griddle", "version"},
			expectedExit:   0,
			expectedOutput: "griddle version " + CliVersion,
		},
		{
			name:           "unknown command",
			args:           []string{"griddle", "unknown"},
			expectedExit:   1,
			expectedOutput: "Unknown command: unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			exitCode, output := callMain()

			assert.Contains(t, output, tt.expectedOutput)
			if tt.expectedExit > 0 {
				assert.Equal(t, tt.expectedExit, exitCode)
			}
		})
	}
}

func TestBuildMediaStore(t *testing.T) {
	t.Run("local backend", func(t *testing.T) {
		cfg := &config.Config{
			MediaBackend:   "local",
			LocalMediaPath: t.TempDir(),
			LocalMediaURL:  "http://localhost:8080/media",
		}
		store, err := buildMediaStore(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, store)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := buildMediaStore(&config.Config{MediaBackend: "floppy"})
		assert.Error(t, err)
	})
}
