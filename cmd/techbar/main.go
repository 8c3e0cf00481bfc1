// Command techbar runs the Technology Bar order engine.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/techbar/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "techbar:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
