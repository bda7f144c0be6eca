package main

import (
	"log"

	"stacks/internal/state"
	"stacks/pkg/cmd/root"
)

func main() {
	s, err := state.New()
	if err != nil {
		log.Fatalf("failed to initialize state: %v", err)
	}
	defer s.Close()

	cmd, err := root.NewCmdRoot(s)
	if err != nil {
		log.Fatalf("failed to build command tree: %v", err)
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
