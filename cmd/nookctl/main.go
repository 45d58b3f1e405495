package main

import (
	"github.com/Manfred-Klatt/nooktrivia-server/internal/cli"
)

func main() {
	cli.Execute()
}
