package main

import (
	"log"
	"os"

	"github.com/viant/houdinimcp"
)

func main() {
	if err := houdinimcp.Run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
