package main

import (
	"fmt"
	"os"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	os.Exit(run(os.Args))
}

func run(argv []string) int {
	effective, loadedFromSession := maybeLoadSession(argv)

	root := newRootCmd(effective[1:], loadedFromSession)
	root.SetArgs(effective[1:])

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}
