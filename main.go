package main

import (
	"os"

	"github.com/authgw/authgw/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
