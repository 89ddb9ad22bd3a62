package main

import (
	"os"

	"github.com/hostauth/hostauth/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
