// Package logger configures apex/log for the respcache binaries.
package logger

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// Init sets up the handler with the given level name. Unknown names fall
// back to info.
func Init(level string) {
	log.SetHandler(&handler{})
	parsed, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}

// handler formats entries as "timestamp L message key=value" on stderr.
type handler struct{}

func (h *handler) HandleLog(e *log.Entry) error {
	ts := time.Now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())
	fmt.Fprintf(os.Stderr, "%s %.1s %s", ts, level, e.Message)
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(os.Stderr, " %s=%v", name, e.Fields.Get(name))
	}
	fmt.Fprintln(os.Stderr)
	return nil
}
