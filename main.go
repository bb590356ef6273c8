package main

import (
	"fmt"
	"os"

	"github.com/AnyUserName/imgblr-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "imgblr: %v\n", err)
		os.Exit(1)
	}
}
