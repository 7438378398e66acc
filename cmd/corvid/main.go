package main

import (
	"os"

	"corvid/attacks"
	"corvid/internal/uci"
)

func main() {
	attacks.Init()

	dispatcher := uci.NewDispatcher(os.Stdout)
	os.Exit(dispatcher.Run(os.Stdin))
}
