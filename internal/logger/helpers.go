package logger

import (
	"fmt"
	"io"
	"os"
)

var (
	FlagVerboseCount int  // -V, -VV
	FlagQuiet        bool // --quiet/-q
	FlagJSON         bool // --json for cron mail and CI
)

func ConfigureLoggerFromFlags() {
	var w io.Writer = os.Stdout
	level := "info"
	switch {
	case FlagQuiet:
		level = "error"
	case FlagVerboseCount > 0:
		level = "debug"
	}

	Configure(Options{
		Level: level,
		JSON:  FlagJSON,
		Out:   w,
	})
}

func sprintf(msg string, args ...interface{}) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
