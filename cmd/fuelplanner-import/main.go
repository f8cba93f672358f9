package main

import (
	"github.com/andrescamacho/fuelplanner/cmd/fuelplanner-import/cli"
)

func main() {
	cli.Execute()
}
