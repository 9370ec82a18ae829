// Command chrono is a calendar calculator over the chronology engine:
// read, set, roll and round fields of an instant in any calendar and zone,
// split spans into periods, and keep labelled instants and periods in a
// local SQLite database.
package main

import (
	"fmt"
	"os"
)

const version = "1.0.0"

func main() {
	root := newRootCmd(newApp(os.Stdout, os.Stderr))
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "chrono: %v\n", err)
		os.Exit(1)
	}
}
