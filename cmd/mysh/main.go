package main

import (
	"os"

	"github.com/baaaaaaaka/mysh/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
