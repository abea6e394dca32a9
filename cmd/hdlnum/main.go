// Command hdlnum inspects bounded bit-vectors and binary fixed-point values.
package main

import (
	"fmt"
	"os"

	"github.com/avdva/hdlnum/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
