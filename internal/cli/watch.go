package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"spendtrack/internal/amqp"
)

// watchCmd prints change notifications published by other spendtrack
// processes until interrupted.
type watchCmd struct {
	app *App
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "follow changes made by other spendtrack processes" }
func (*watchCmd) Usage() string {
	return `spendtrack watch

  Prints one line per change notification. Requires AMQP_URL.
`
}

func (*watchCmd) SetFlags(*flag.FlagSet) {}

func (c *watchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.app.Config.AMQPEnabled() {
		return c.app.failf(subcommands.ExitUsageError, "Error: watch needs AMQP_URL to be set")
	}

	client, err := amqp.NewClient(ctx, amqp.Config{
		URL:        c.app.Config.AMQPURL,
		Exchange:   c.app.Config.AMQPExchange,
		RoutingKey: c.app.Config.AMQPRoutingKey,
		Logger:     c.app.Logger,
	})
	if err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error connecting to broker: %v", err)
	}
	defer client.Close()

	ctx, stop := SignalContext(ctx)
	defer stop()

	err = client.ConsumeChanges(ctx, func(msg *amqp.ChangeMessage) error {
		_, err := fmt.Fprintln(c.app.Out, formatChange(msg))
		return err
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return c.app.failf(subcommands.ExitFailure, "Error: %v", err)
	}
	return subcommands.ExitSuccess
}

func formatChange(msg *amqp.ChangeMessage) string {
	return fmt.Sprintf("%s  rev %-5d %-20s %s",
		msg.Timestamp.Local().Format("2006-01-02 15:04:05"), msg.Revision, msg.Kind, msg.ID)
}
