package main

import (
	"context"
	"fmt"

	"github.com/getkayan/biolock/events"
	"github.com/getkayan/biolock/flow"
)

// ---- Watch Command ----

// watchCommand prints every bus event while running one direct and two
// cached authentications, so the full event feed (start, cache:created,
// cache:used, success/failure) can be observed end to end.
func (c *CLI) watchCommand(args []string) error {
	for _, kind := range events.Kinds() {
		c.bus.On(kind, func(e events.Event) {
			fmt.Printf("%s  %s  %+v\n", e.Timestamp().Format("15:04:05.000"), e.EventKind(), e)
		})
	}

	ctx := context.Background()

	fmt.Println("-- direct --")
	c.orch.Authenticate(ctx, flow.Options{Reason: "Watch: direct challenge"})

	fmt.Println("-- cached (miss) --")
	c.orch.Authenticate(ctx, flow.Options{Reason: "Watch: cached challenge", Method: flow.MethodCached})

	fmt.Println("-- cached (hit) --")
	c.orch.Authenticate(ctx, flow.Options{Reason: "Watch: cached reuse", Method: flow.MethodCached})

	return nil
}
