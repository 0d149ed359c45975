package main

import (
	"log"
	"os"
)

var server srv

func main() {
	app := server.loadApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
