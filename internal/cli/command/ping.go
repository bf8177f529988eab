package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/moroboxai/game-sdk-go/internal/cli/connection"
)

// PingCommand checks that a control server accepts connections.
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:      "ping",
		Usage:     "Check that a control server accepts connections",
		ArgsUsage: "ADDR",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"c"},
				Usage:   "Number of connection attempts",
				Value:   1,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout per attempt",
				Value: connection.DefaultDialTimeout,
			},
		},
		Action: pingControl,
	}
}

type pingResult struct {
	Addr    string `json:"addr" yaml:"addr"`
	Seq     int    `json:"seq" yaml:"seq"`
	Latency string `json:"latency" yaml:"latency"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

func pingControl(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.Exit("ping requires exactly one ADDR", 2)
	}

	client := connection.NewControlClient(c.Args().First(), c.Duration("timeout"))
	count := max(c.Int("count"), 1)

	results := make([]pingResult, 0, count)
	failed := 0
	for i := 1; i <= count; i++ {
		r := pingResult{Addr: client.Addr(), Seq: i}
		rtt, err := client.Ping(c.Context)
		if err != nil {
			r.Error = err.Error()
			failed++
		} else {
			r.Latency = rtt.Round(time.Microsecond).String()
		}
		results = append(results, r)
	}

	if err := render(c, results); err != nil {
		return err
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d attempts failed", failed, count), 1)
	}
	return nil
}
