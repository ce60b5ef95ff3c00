package main

import (
	"fmt"
	"os"

	"github.com/m04kA/SMC-SalonBooking/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
