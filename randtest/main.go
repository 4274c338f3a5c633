package main

import (
	"log"

	"github.com/tutils/randtest/cmd"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)
	cmd.Execute()
}
