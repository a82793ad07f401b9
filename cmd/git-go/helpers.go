package main

import (
	"fmt"
	"io"

	git "github.com/wyag/git-go"
)

// loadRepository finds the repository that contains the -C directory
// (or the process's working directory), ascending the directory tree
// the way git itself does.
func loadRepository(cfg *globalFlags) (*git.Repository, error) {
	return git.FindRepository(cfg.C.String())
}

func fprintln(out io.Writer, a ...interface{}) {
	fmt.Fprintln(out, a...)
}

func fprintf(out io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(out, format, a...)
}
