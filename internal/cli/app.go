package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"metronome/internal/api"
	"metronome/internal/config"
	"metronome/internal/domain"
	"metronome/internal/validation"

	"github.com/dustin/go-humanize"
)

// App holds what every command handler needs: the business API, the
// effective configuration and the output streams
type App struct {
	businessAPI    api.BusinessAPI
	config         *config.Config
	queryValidator *validation.QueryValidator
	out            io.Writer
	errOut         io.Writer
}

// NewApp creates a new CLI application instance with default configuration
func NewApp(businessAPI api.BusinessAPI) *App {
	return NewAppWithConfig(businessAPI, config.NewConfig())
}

// NewAppWithConfig creates a new CLI application instance with the given configuration
func NewAppWithConfig(businessAPI api.BusinessAPI, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{
		businessAPI:    businessAPI,
		config:         cfg,
		queryValidator: validation.NewQueryValidatorWithValidator(validation.NewValidatorWithConfig(cfg)),
		out:            os.Stdout,
		errOut:         os.Stderr,
	}
}

// WithOutput redirects command output. Results go to out, notices and
// warnings to errOut
func (a *App) WithOutput(out, errOut io.Writer) *App {
	a.out = out
	a.errOut = errOut
	return a
}

// formatTime renders t with the configured display format
func (a *App) formatTime(t time.Time) string {
	return t.Local().Format(a.config.Time.DisplayFormat)
}

// formatStartTime renders a start time in a listing, relative to now when
// relative times are enabled
func (a *App) formatStartTime(t time.Time) string {
	if a.config.Display.RelativeTimes {
		return a.relativeTime(t)
	}
	return a.formatTime(t)
}

func (a *App) relativeTime(t time.Time) string {
	return humanize.RelTime(t, a.businessAPI.Now(), "ago", "from now")
}

// printNotice writes the filter notice, if any, to the error stream
func (a *App) printNotice(resolution domain.FilterResolution) {
	if notice := resolution.Notice(); notice != "" {
		fmt.Fprintln(a.errOut, notice)
	}
}
