package main

import (
	"context"
	"fmt"
)

// ---- Status Command ----

// statusCommand is read-only: it uses the cache's non-mutating accessors so
// repeated invocations report the same thing.
func (c *CLI) statusCommand(args []string) error {
	ctx := context.Background()

	available := c.orch.IsAvailable(ctx)

	fmt.Printf("state:        %s\n", c.orch.State())
	fmt.Printf("available:    %t\n", available)
	if c.cache.IsValid() {
		fmt.Printf("cache:        valid (%s remaining)\n", c.cache.RemainingTTL())
	} else {
		fmt.Printf("cache:        none\n")
	}
	return nil
}
