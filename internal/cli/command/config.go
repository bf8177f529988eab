package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/moroboxai/game-sdk-go/internal/infra/confloader"
	"github.com/moroboxai/game-sdk-go/internal/server/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "gamesdk-server configuration commands",
		Subcommands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Print the merged configuration (defaults, file, environment)",
				ArgsUsage: "[FILE]",
				Action:    configShow,
			},
			{
				Name:      "validate",
				Usage:     "Check a configuration file",
				ArgsUsage: "[FILE]",
				Action:    configValidate,
			},
		},
	}
}

func loadServerConfig(c *cli.Context) (*config.ServerConfig, *confloader.Loader, error) {
	l := confloader.NewLoader(
		confloader.WithDefaults(config.Default().ToMap()),
		confloader.WithConfigFile(c.Args().First()),
	)

	cfg := &config.ServerConfig{}
	if err := l.Load(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, l, nil
}

func configShow(c *cli.Context) error {
	_, l, err := loadServerConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return render(c, l.All())
}

func configValidate(c *cli.Context) error {
	cfg, _, err := loadServerConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if err := config.Verify(cfg); err != nil {
		return cli.Exit(fmt.Sprintf("invalid configuration:\n%v", err), 1)
	}

	name := c.Args().First()
	if name == "" {
		name = "defaults"
	}
	fmt.Fprintf(writer(c), "%s: ok\n", name)
	return nil
}
