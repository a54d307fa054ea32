package main

import (
	"os"

	"github.com/hantaozhou/docvault/pkg/log"
)

func main() {
	server := InitWebServer()

	addr := os.Getenv("DOCVAULT_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Infof("listening on %s", addr)
	if err := server.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
