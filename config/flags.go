package config

import (
	"github.com/spf13/pflag"
)

// RegisterFlags binds Settings' fields onto fs, in the same persistent-flag
// style the diagnostics CLI's root command uses.
func RegisterFlags(fs *pflag.FlagSet, s *Settings) {
	fs.StringVar(&s.LogFile, "log", s.LogFile, "set the log file path")
	fs.StringVar(&s.LogFormat, "log-format", s.LogFormat, "set the format for log output (text or json)")
	fs.BoolVar(&s.Debug, "debug", s.Debug, "enable debug logging")
	fs.StringVar(&s.CommandPipe, "command-pipe", s.CommandPipe, "named pipe path for the command channel")
	fs.StringVar(&s.DataPipe, "data-pipe", s.DataPipe, "named pipe path for the data channel")
}
