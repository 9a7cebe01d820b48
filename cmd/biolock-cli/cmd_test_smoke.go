package main

import (
	"context"
	"fmt"
)

// ---- Smoke Test Command ----

// testCommand runs the orchestrator's smoke test, which terminates the
// process on any failure.
func (c *CLI) testCommand(args []string) error {
	c.orch.Test(context.Background())
	fmt.Println("ok")
	return nil
}
