package main

import (
	"log"
	"os"
)

func run() error {
	os.Exit(2)
	return nil
}

func main() {
	defer func() {
		os.Exit(3)
	}()

	if err := run(); err != nil {
		log.Fatalln(err)
	}
	os.Exit(1) // want "os.Exit called in main"
}
