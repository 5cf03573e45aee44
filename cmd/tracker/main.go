// Package main implements the tracker CLI for managing internship applications.
package main

import (
	"fmt"
	"os"
)

func main() {
	c := defaultCLI()
	err := newRootCmd(c).Execute()
	if closeErr := c.close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
