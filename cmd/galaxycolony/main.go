package main

import (
	"github.com/andrescamacho/galaxycolony-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
