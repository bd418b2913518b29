package main

import (
	"os"

	"github.com/inii-man/foodapp/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
