package config

import "github.com/urfave/cli/v3"

// Slack holds Slack client configuration
type Slack struct {
	Token          string `masq:"secret"`
	DefaultChannel string
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-token",
			Usage:       "Slack bot token",
			Required:    true,
			Destination: &c.Token,
			Sources:     cli.EnvVars("FIGRELAY_SLACK_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Default Slack channel for destinations without one",
			Destination: &c.DefaultChannel,
			Sources:     cli.EnvVars("FIGRELAY_SLACK_CHANNEL"),
		},
	}
}
