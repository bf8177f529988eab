package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/moroboxai/game-sdk-go/pkg/sdk"
)

// DefaultHeaderFile is read when no header path is given.
const DefaultHeaderFile = "header.yml"

// HeaderCommand returns the header subcommand group.
func HeaderCommand() *cli.Command {
	return &cli.Command{
		Name:  "header",
		Usage: "Game header commands",
		Subcommands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Check that a game header is complete",
				ArgsUsage: "[FILE]",
				Action:    headerValidate,
			},
			{
				Name:      "show",
				Usage:     "Print a game header",
				ArgsUsage: "[FILE]",
				Action:    headerShow,
			},
		},
	}
}

func headerPath(c *cli.Context) string {
	if c.Args().Len() > 0 {
		return c.Args().First()
	}
	return DefaultHeaderFile
}

func headerValidate(c *cli.Context) error {
	path := headerPath(c)
	verbosef(c, "reading %s", path)

	h, err := sdk.LoadHeader(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("%s: %v", path, err), 1)
	}

	fmt.Fprintf(writer(c), "%s: ok (%s, %dx%d, boot %s)\n", path, h.Title, h.Width, h.Height, h.Boot)
	return nil
}

func headerShow(c *cli.Context) error {
	path := headerPath(c)

	h, err := sdk.LoadHeader(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("%s: %v", path, err), 1)
	}
	return render(c, h)
}
