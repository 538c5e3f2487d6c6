// Package config holds host settings, persisted through fyne preferences.
package config

import (
	"log"

	"fyne.io/fyne/v2"

	"LocalAnnotate/internal/engine"
	"LocalAnnotate/internal/state"
)

const (
	// URLScheme prefixes the share link a remote control panel is started with.
	URLScheme = "localannotate://"
	// ServiceType is the mDNS service the host advertises.
	ServiceType = "_localannotate._tcp"
	// DefaultPort is where the command endpoint listens.
	DefaultPort = 8899

	prefKeyPort  = "server.port"
	prefKeyColor = "brush.color"
	prefKeySize  = "brush.size"
	prefKeyTool  = "brush.tool"
	prefKeyMDNS  = "server.mdns"
)

type Config struct {
	Port  int
	MDNS  bool
	Color state.Color
	Size  int
	Tool  state.Tool
}

func Default() Config {
	b := engine.DefaultConfig()
	return Config{
		Port:  DefaultPort,
		MDNS:  true,
		Color: b.Color,
		Size:  b.Size,
		Tool:  b.Tool,
	}
}

// Load reads settings from prefs, falling back to defaults for anything
// missing or malformed.
func Load(prefs fyne.Preferences) Config {
	c := Default()
	c.Port = prefs.IntWithFallback(prefKeyPort, c.Port)
	c.MDNS = prefs.BoolWithFallback(prefKeyMDNS, c.MDNS)
	c.Size = prefs.IntWithFallback(prefKeySize, c.Size)

	if s := prefs.String(prefKeyColor); s != "" {
		if col, err := state.ParseColor(s); err == nil {
			c.Color = col
		} else {
			log.Printf("[CONFIG] Ignoring stored brush color: %v", err)
		}
	}
	if s := prefs.String(prefKeyTool); s != "" {
		if t, ok := state.ParseTool(s); ok {
			c.Tool = t
		}
	}
	if c.Size < engine.MinSize || c.Size > engine.MaxSize {
		c.Size = Default().Size
	}
	if c.Port <= 0 || c.Port > 65535 {
		c.Port = DefaultPort
	}
	return c
}

// Save writes the settings back to prefs.
func (c Config) Save(prefs fyne.Preferences) {
	prefs.SetInt(prefKeyPort, c.Port)
	prefs.SetBool(prefKeyMDNS, c.MDNS)
	prefs.SetString(prefKeyColor, c.Color.String())
	prefs.SetInt(prefKeySize, c.Size)
	prefs.SetString(prefKeyTool, c.Tool.String())
}

// Brush returns the engine's initial brush.
func (c Config) Brush() engine.Config {
	return engine.Config{Color: c.Color, Size: c.Size, Tool: c.Tool}
}

// Capture copies the brush currently in use by e, so it can be saved.
func (c Config) Capture(e *engine.Engine) Config {
	c.Color = e.Color()
	c.Size = e.Size()
	c.Tool = e.Tool()
	return c
}
