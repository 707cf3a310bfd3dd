package main

import (
	"log"

	"github.com/joblyst/joblyst/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
