package main

import (
	"fmt"
	"os"

	"concert-booking-cli/cmd"
)

var (
	version = "dev"
	commit  = "none"
)

func handleArgs(args []string) bool {
	if cmd.ValidMode(args) {
		return true
	}
	fmt.Println(cmd.InvalidMode)
	os.Exit(2)
	return false
}

func main() {
	args := os.Args[1:]
	if !handleArgs(args) {
		return
	}

	if err := cmd.Execute(cmd.BuildInfo{Version: version, Commit: commit}, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
