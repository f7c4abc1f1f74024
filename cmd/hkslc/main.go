// Command hkslc is the HKSL CLI driver (spec §6.1): it owns file I/O and
// exit-code semantics, neither of which the CORE touches.
//
// Grounded in the teacher's command dispatch (codecrafters/cmd/main.go) and
// its use of github.com/fatih/color for pass/fail coloring in its test
// runner (root main.go) — reused here to color diagnostics red.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/hksl-lang/hksl"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <source-file>\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	filename := flag.Arg(0)
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", filename, err)
		os.Exit(1)
	}

	result := hksl.Compile(string(source), filename)

	if len(result.Errors) == 0 {
		os.Exit(0)
	}

	for _, diag := range result.Errors {
		fmt.Println(color.RedString(diag))
	}
	os.Exit(1)
}
