package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr          string
	TriggerSecret string `masq:"secret"`
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("RELNOTE_ADDR"),
		},
		&cli.StringFlag{
			Name:        "trigger-secret",
			Usage:       "HMAC secret for HS256 bearer tokens on /api (disabled if empty)",
			Destination: &c.TriggerSecret,
			Sources:     cli.EnvVars("RELNOTE_TRIGGER_SECRET"),
		},
	}
}
