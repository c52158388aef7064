// Package wizard asks the user which analysis to run when epcstats is
// started with --interactive.
package wizard

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/greenlandlord/epcstats/internal/epc"
	"golang.org/x/term"
)

// Mode is the kind of analysis the user picked.
type Mode string

const (
	ModeFull         Mode = "full"
	ModeLocale       Mode = "locale"
	ModePropertyType Mode = "property-type"
)

// Selection holds everything collected by the wizard.
type Selection struct {
	Mode         Mode
	LocaleCode   string
	PropertyType string
}

// Validate checks that the selection names the key its mode needs.
func (s Selection) Validate() error {
	switch s.Mode {
	case ModeFull:
		return nil
	case ModeLocale:
		if s.LocaleCode == "" {
			return errors.New("a local authority is required")
		}
		return nil
	case ModePropertyType:
		if s.PropertyType == "" {
			return errors.New("a property type is required")
		}
		return nil
	default:
		return fmt.Errorf("invalid mode %q", s.Mode)
	}
}

// ModeOptions are the choices of the first question.
func ModeOptions() []huh.Option[Mode] {
	return []huh.Option[Mode]{
		huh.NewOption("Full analysis (all cities and property types)", ModeFull),
		huh.NewOption("Single local authority", ModeLocale),
		huh.NewOption("Single property type", ModePropertyType),
	}
}

// LocaleOptions labels each locale with its code, keeping order.
func LocaleOptions(locales []epc.Locale) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(locales))
	for _, l := range locales {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", l.Name, l.Code), l.Code))
	}
	return opts
}

// PropertyTypeOptions turns property type labels into options.
func PropertyTypeOptions(types []string) []huh.Option[string] {
	return huh.NewOptions(types...)
}

// Run asks for a mode and then, for the single-key modes, the key.
func Run(in io.Reader, out io.Writer, locales []epc.Locale, propertyTypes []string) (*Selection, error) {
	sel := &Selection{Mode: ModeFull}

	if err := runForm(in, out, huh.NewGroup(
		huh.NewSelect[Mode]().
			Title("What would you like to analyze?").
			Options(ModeOptions()...).
			Value(&sel.Mode),
	)); err != nil {
		return nil, err
	}

	switch sel.Mode {
	case ModeLocale:
		if err := runForm(in, out, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Local authority").
				Options(LocaleOptions(locales)...).
				Value(&sel.LocaleCode),
		)); err != nil {
			return nil, err
		}
	case ModePropertyType:
		if err := runForm(in, out, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Property type").
				Options(PropertyTypeOptions(propertyTypes)...).
				Value(&sel.PropertyType),
		)); err != nil {
			return nil, err
		}
	}

	if err := sel.Validate(); err != nil {
		return nil, err
	}
	return sel, nil
}

func runForm(in io.Reader, out io.Writer, group *huh.Group) error {
	form := huh.NewForm(group).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}
	return nil
}
