package config

import "io"

// SetWriter replaces the log output destination
func (c *Logger) SetWriter(w io.Writer) {
	c.writer = w
}
