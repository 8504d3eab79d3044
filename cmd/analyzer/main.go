// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command analyzer is the CLI front end for the string pipeline: it
// parses the queue capacity and stage names, wires a pipeline, feeds it
// from stdin, and waits for orderly shutdown.
//
// Usage:
//
//	analyzer <queue_size> <stage1> <stage2> ... <stageN>
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"code.hybscloud.com/pipeline"
	"code.hybscloud.com/pipeline/loaders"
	"code.hybscloud.com/pipeline/modload"
	"code.hybscloud.com/pipeline/stages"
)

func printUsage(out *os.File) {
	fmt.Fprintf(out, "Usage: analyzer <queue_size> <stage1> <stage2> ... <stageN>\n")
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "Arguments:\n")
	fmt.Fprintf(out, "  queue_size    Maximum number of items in each stage's queue\n")
	fmt.Fprintf(out, "  stage1..N     Names of stages to load (without .so extension)\n")
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "Available stages:\n")
	fmt.Fprintf(out, "  logger        - Logs all strings that pass through\n")
	fmt.Fprintf(out, "  typewriter    - Simulates typewriter effect with delays\n")
	fmt.Fprintf(out, "  uppercaser    - Converts strings to uppercase\n")
	fmt.Fprintf(out, "  rotator       - Move every character to the right. Last character moves to\n")
	fmt.Fprintf(out, "the beginning.\n")
	fmt.Fprintf(out, "  flipper       - Reverses the order of characters\n")
	fmt.Fprintf(out, "  expander      - Expands each character with spaces\n")
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "Example:\n")
	fmt.Fprintf(out, "  ./analyzer 20 uppercaser rotator logger\n")
	fmt.Fprintf(out, "  echo 'hello' | ./analyzer 20 uppercaser rotator logger\n")
	fmt.Fprintf(out, "  echo '<END>' | ./analyzer 20 uppercaser rotator logger\n")
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "error: missing arguments")
		printUsage(os.Stdout)
		return 1
	}

	capacity, err := strconv.Atoi(args[0])
	if err != nil || capacity <= 0 {
		fmt.Fprintf(os.Stderr, "error: invalid queue size %q\n", args[0])
		printUsage(os.Stdout)
		return 1
	}

	loader := loaders.NewChain(stages.DefaultRegistry(), modload.NewLoader())

	p, err := pipeline.New(loader, capacity, args[1:]...)
	if err != nil {
		var pe *pipeline.Error
		if errors.As(err, &pe) {
			fmt.Fprintf(os.Stderr, "error: %v\n", pe.Unwrap())
			if pe.Code == pipeline.ExitLoadFailure {
				printUsage(os.Stdout)
			}
			return int(pe.Code)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if err := p.Attach(); err != nil {
		var pe *pipeline.Error
		if errors.As(err, &pe) {
			fmt.Fprintf(os.Stderr, "error: %v\n", pe.Unwrap())
			return int(pe.Code)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return int(pipeline.ExitAttachFailure)
	}

	p.Feed(os.Stdin)
	p.Drain()
	p.Teardown()
	stages.Sync()

	fmt.Println("Pipeline shutdown complete")
	return int(pipeline.ExitOK)
}
