/*
DESCRIPTION
  variables.go declares the defaulting/parsing table for each Config
  field, following revid/config/variables.go's declarative style.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import "strconv"

// Defaults for fields that may be left unset by a caller.
const (
	DefaultAlign           = 64
	DefaultConvertQueueMul = 4
	DefaultMaxWorkers      = 6
)

// variable describes one Config field: its external name (for Update),
// how to default/validate it, and how to parse an incoming string
// value for it.
type variable struct {
	Name     string
	Validate func(c *Config)
	Update   func(c *Config, val string)
}

// Variables is the declarative list of all Config fields that
// participate in defaulting (via Validate) and/or runtime
// reconfiguration (via Update).
var Variables = []variable{
	{
		Name: "Align",
		Validate: func(c *Config) {
			if c.Align == 0 {
				c.LogInvalidField("Align", DefaultAlign)
				c.Align = DefaultAlign
			}
		},
		Update: func(c *Config, val string) {
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				c.Align = uint(n)
			}
		},
	},
	{
		Name: "Workers",
		Update: func(c *Config, val string) {
			if n, err := strconv.Atoi(val); err == nil && n >= 0 {
				c.Workers = uint(n)
			}
		},
	},
	{
		Name: "ConvertQueueCap",
		Update: func(c *Config, val string) {
			if n, err := strconv.Atoi(val); err == nil && n >= 0 {
				c.ConvertQueueCap = uint(n)
			}
		},
	},
	{
		Name: "SourceFPS",
		Update: func(c *Config, val string) {
			if n, err := strconv.Atoi(val); err == nil && n >= 0 {
				c.SourceFPS = uint(n)
			}
		},
	},
	{
		Name: "PalettePath",
		Update: func(c *Config, val string) {
			c.PalettePath = val
		},
	},
	{
		Name: "OutputPath",
		Update: func(c *Config, val string) {
			c.OutputPath = val
		},
	},
}
