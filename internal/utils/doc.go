// Package utils provides small helpers shared by the rdc commands and
// workflows.
//
// # Input
//
//   - ReadStdin: reads piped data from standard input
//   - ReadInput: reads a file, or stdin when the path is "-"
//   - WriteFile: writes an owner-only file, creating parent directories
//
// # System
//
//   - GetUsername, GetHostname: identify who ran an operation
//   - Actor: "user@host" (or $RDC_ACTOR), used in audit entries
//
// # Terminal
//
//   - ReadPassphrase: reads a line from the terminal without echo
//   - PromptMasterPassword: asks for the master password, twice for writes
//   - IsTerminal: reports whether stdin is interactive
package utils
