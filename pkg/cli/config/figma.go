package config

import "github.com/urfave/cli/v3"

// Figma holds Figma webhook configuration
type Figma struct {
	Passcode string `masq:"secret"`
}

// Flags returns CLI flags for Figma configuration
func (c *Figma) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "figma-passcode",
			Usage:       "Shared passcode expected in Figma webhook payloads",
			Required:    true,
			Destination: &c.Passcode,
			Sources:     cli.EnvVars("FIGRELAY_FIGMA_PASSCODE"),
		},
	}
}
