package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/moroboxai/game-sdk-go/pkg/sdk"
)

// FetchCommand downloads an asset through sdk.AssetClient.
func FetchCommand() *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Download an asset from a running file server",
		ArgsUsage: "PATH",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "server",
				Aliases:  []string{"s"},
				Usage:    "File server address (e.g. 127.0.0.1:8080)",
				EnvVars:  []string{"GAMESDK_SERVER"},
				Required: true,
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "Write the asset to FILE instead of stdout",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Request timeout",
				Value: 30 * time.Second,
			},
		},
		Action: fetchAsset,
	}
}

func fetchAsset(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.Exit("fetch requires exactly one PATH", 2)
	}
	path := c.Args().First()

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	client := sdk.NewAssetClient(c.String("server"))
	verbosef(c, "GET %s", client.URL(path))

	data, err := client.Get(ctx, path)
	if errors.Is(err, sdk.ErrAssetNotFound) {
		return cli.Exit(fmt.Sprintf("%s: not found", path), 1)
	}
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	if out := c.String("out"); out != "" {
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		verbosef(c, "wrote %d bytes to %s", len(data), out)
		return nil
	}

	_, err = writer(c).Write(data)
	return err
}
