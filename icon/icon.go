// Package icon renders feedback symbols in the variant selected by icons.variant.
package icon

import (
	"github.com/dashgrab/dashgrab/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, squares}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Warn
	Progress
	Lua
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	squares string
}

var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "", plain: "ok", squares: "▣"},
	Fail:     {emoji: "❌", nerd: "", plain: "error", squares: "▢"},
	Warn:     {emoji: "⚠️", nerd: "", plain: "warning", squares: "◩"},
	Progress: {emoji: "⏳", nerd: "", plain: "...", squares: "◫"},
	Lua:      {emoji: "🌙", nerd: "", plain: "lua", squares: "◪"},
}

func (d *iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the symbol for i in the configured variant.
func Get(i Icon) string {
	return icons[i].get()
}
