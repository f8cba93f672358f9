package main

import (
	"github.com/andrescamacho/fuelplanner/cmd/fuelplanner-geocode/cli"
)

func main() {
	cli.Execute()
}
