package cli

import (
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/sumerqa/chatkit"
)

// Options are the global CLI options; service connectivity reuses the
// chatkit option tags so flags and config stay in sync.
type Options struct {
	chatkit.Options
	Debug bool `long:"debug" description:"enable debug logging"`
}

// Run parses args and executes the selected command.
func Run(args []string) error {
	options := &Options{}
	parser := flags.NewParser(options, flags.Default)
	registerCommands(parser, options)
	_, err := parser.ParseArgs(args)
	return err
}

func (o *Options) kit() (*chatkit.Client, error) {
	if o.BaseURL == "" {
		o.BaseURL = os.Getenv("CHATKIT_URL")
	}
	if o.SessionFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			o.SessionFile = filepath.Join(home, ".chatkit", "session.json")
		}
	}
	logger := zerolog.Nop()
	if o.Debug {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger().Level(zerolog.DebugLevel)
	}
	return chatkit.New(&o.Options, chatkit.WithLogger(logger))
}
