package terminal

import "github.com/fatih/color"

// Theme groups the color styles used by the push tool's output.
type Theme struct {
	Prompt  *color.Color
	Text    *color.Color
	Error   *color.Color
	Success *color.Color
	Info    *color.Color
}

// DefaultTheme returns the standard palette.
func DefaultTheme() *Theme {
	return &Theme{
		Prompt:  color.New(color.FgGreen),
		Text:    color.New(color.FgWhite),
		Error:   color.New(color.FgRed),
		Success: color.New(color.FgGreen),
		Info:    color.New(color.FgBlue),
	}
}

// Monochrome returns a palette with coloring disabled, for dumb
// terminals and log capture.
func Monochrome() *Theme {
	plain := func() *color.Color {
		c := color.New()
		c.DisableColor()
		return c
	}
	return &Theme{
		Prompt:  plain(),
		Text:    plain(),
		Error:   plain(),
		Success: plain(),
		Info:    plain(),
	}
}
