package driver

import (
	"io"
	"os"

	"ircmsg/internal/config"
	"ircmsg/internal/validate"
)

// Options control CheckPaths and ParseStream.
type Options struct {
	Jobs           int // <= 0: GOMAXPROCS
	MaxDiagnostics int // на файл
	Encoding       string
	Extensions     []string
	Limits         validate.Limits
	MaxLineBytes   int // только для ParseStream; 0: lineio.DefaultMaxLineBytes
	Timings        bool

	// Stdin is read for the path "-". nil means os.Stdin.
	Stdin    io.Reader
	Progress ProgressSink
	OnPhase  PhaseObserver
}

// OptionsFromConfig maps loaded settings onto driver options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Jobs:           cfg.Jobs,
		MaxDiagnostics: cfg.MaxDiagnostics,
		Encoding:       cfg.Encoding,
		Extensions:     cfg.Extensions,
		Limits:         cfg.Limits,
	}
}

func (o Options) stdin() io.Reader {
	if o.Stdin != nil {
		return o.Stdin
	}
	return os.Stdin
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return config.Default().Extensions
	}
	return o.Extensions
}
