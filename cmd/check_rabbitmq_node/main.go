package main

import (
	"context"
	"os"

	"github.com/consol-monitoring/check_rabbitmq_node/pkg/check_rabbitmq_node"
)

// Build contains the current git commit id
// compile passing -ldflags "-X main.Build=<build sha1>" to set the id.
var Build string

func main() {
	if Build != "" {
		check_rabbitmq_node.Build = Build
	}

	os.Exit(check_rabbitmq_node.Check(context.Background(), os.Stdout, os.Args[1:]))
}
