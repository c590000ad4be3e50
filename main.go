package main

import (
	"os"

	"github.com/sergey-rogatin/compiler/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
