package main

import (
	"os"

	"coachboard/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
