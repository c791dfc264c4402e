// Package logger provides leveled console logging for rdc commands and the
// storage layer underneath them.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is formatted with colored prefixes from fatih/color.
//
// # Verbosity Levels
//
//   - --verbose: Shows info messages
//   - --debug: Shows info and debug messages, including every backend call
//
// Warnings and errors are always shown on stderr.
//
// # Log Methods
//
//	Logger.Infof()  // Shown with --verbose or --debug
//	Logger.Debugf() // Shown only with --debug
//	Logger.Warnf()  // Always shown
//	Logger.Errorf() // Always shown
//
// # Usage
//
// Commands create a logger in their PersistentPreRun and hand it to the
// clients they build:
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	client := objectstore.New(api, bucket, prefix)
//	client.Log = log.Named("s3")
//
// Named tags each line with the component that wrote it, so --debug output
// from the object store, the adapters and the queue can be told apart.
//
// The zero value is quiet apart from warnings and errors, so library code
// never needs a nil check.
package logger
