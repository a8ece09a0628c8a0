// Command boardctl administers a trustboard deployment: schema migrations,
// trust edges and development tokens.
package main

import (
	"log"
)

func main() {
	if err := newRootCmd(defaultEnv()).Execute(); err != nil {
		log.Fatalf("boardctl: %v", err)
	}
}
