package main

import (
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	if err := rootCmd().Execute(); err != nil {
		log.Printf("lsbridge error: %v", err)
		os.Exit(1)
	}
}
