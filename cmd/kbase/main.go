package main

import (
	"github.com/kbase-labs/kbase-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
