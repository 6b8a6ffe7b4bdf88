package main

import (
	"fmt"
	"os"

	"blogspace/mvc"
)

// exit is replaced in tests.
var exit = os.Exit

func main() {
	RealMain()
}

// RealMain runs the command line with os.Args and exits non-zero on error.
func RealMain() {
	if err := mvc.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		exit(1)
	}
}
