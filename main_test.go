package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"blogspace/mvc"

	"github.com/stretchr/testify/assert"
)

func callMain() (int, string) {
	exitCode := 0
	oldExit := exit
	defer func() { exit = oldExit }()
	exit = func(code int) {
		exitCode = code
	}

	var buf bytes.Buffer
	oldStdout, oldStderr := os.Stdout, os.Stderr
	r, w, _ := os.Pipe()
	os.Stdout, os.Stderr = w, w

	outputDone := make(chan bool)
	go func() {
		_, _ = io.Copy(&buf, r)
		outputDone <- true
	}()

	RealMain()

	w.Close()
	os.Stdout, os.Stderr = oldStdout, oldStderr
	<-outputDone

	return exitCode, buf.String()
}

func TestRealMain(t *testing.T) {
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
			args:           []string{"blogspace"},
			expectedExit:   0,
			expectedOutput: "Usage:",
		},
		{
			name:           "version command",
			args:           []string{"blogspace", "version"},
			expectedExit:   0,
			expectedOutput: "blogspace version " + mvc.Version,
		},
		{
			name:           "unknown command",
			args:           []string{"blogspace", "unknown"},
			expectedExit:   1,
			expectedOutput: `Error: unknown command "unknown"`,
		},
		{
			name:           "restore without file",
			args:           []string{"blogspace", "restore"},
			expectedExit:   1,
			expectedOutput: "Error: accepts 1 arg(s), received 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			exitCode, output := callMain()

			assert.Contains(t, output, tt.expectedOutput)
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}
