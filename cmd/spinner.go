package cmd

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/briandowns/spinner"
	"github.com/rediacc/rdc/internal/ui"
)

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. The returned cleanup function must be deferred;
// it stops the spinner and prints FinalMSG, adding a trailing newline.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	previous := log.Writer()
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(previous)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Cleared so Stop does not print it a second time.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}
