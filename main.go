package main

import (
	"os"

	"incus-snapshot/src/cli"
)

func main() {
	os.Exit(cli.Execute())
}
