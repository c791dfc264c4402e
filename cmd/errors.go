package cmd

import (
	"errors"

	"github.com/briandowns/spinner"
	rerrors "github.com/rediacc/rdc/internal/errors"
	"github.com/rediacc/rdc/internal/ui"
)

// formatError turns a workflow error into a user-facing message with a hint
// where one helps.
func formatError(action string, err error) string {
	cross := ui.Error.Sprint("✗") + " "
	hint := "\n" + ui.Info.Sprint("→") + " "

	switch {
	case errors.Is(err, rerrors.ErrVersionConflict):
		return cross + err.Error() + hint + "Run " + ui.Code.Sprint("rdc store pull") + " and re-apply your changes on the newer version"

	case errors.Is(err, rerrors.ErrGUIDMismatch):
		return cross + err.Error() + hint + "Use a different name, or delete the remote config first"

	case errors.Is(err, rerrors.ErrStoreNotFound):
		return cross + err.Error() + hint + "Add it with " + ui.Code.Sprint("rdc store add")

	case errors.Is(err, rerrors.ErrObjectStoreNotConfigured):
		return cross + err.Error() + hint + "Set a bucket with " + ui.Code.Sprint("rdc config set-s3 --bucket <name>")

	case errors.Is(err, rerrors.ErrPasswordRequired):
		return cross + err.Error() + hint + "Set " + ui.Code.Sprint("RDC_MASTER_PASSWORD") + " or pass " + ui.Code.Sprint("--ask-password")

	case errors.Is(err, rerrors.ErrDecryptFailed):
		return cross + err.Error() + hint + "Check the master password"

	case errors.Is(err, rerrors.ErrConfigNotFound),
		errors.Is(err, rerrors.ErrVaultNotFound),
		errors.Is(err, rerrors.ErrTaskNotFound),
		errors.Is(err, rerrors.ErrStateEntryNotFound),
		errors.Is(err, rerrors.ErrConfigCorrupt),
		errors.Is(err, rerrors.ErrInvalidConfig),
		errors.Is(err, rerrors.ErrInvalidInput),
		errors.Is(err, rerrors.ErrInvalidEnvelope),
		errors.Is(err, rerrors.ErrInvalidStoreEntry),
		errors.Is(err, rerrors.ErrInvalidStoreType),
		errors.Is(err, rerrors.ErrInvalidDateFormat):
		return cross + err.Error()

	case errors.Is(err, rerrors.ErrStorage):
		return cross + action + " failed: " + err.Error() + hint + "Check connectivity and credentials, then retry"

	default:
		return cross + action + " failed: " + err.Error()
	}
}

// reportError shows err through the spinner and returns ErrReported so the
// process exits non-zero.
func reportError(s *spinner.Spinner, action string, err error) error {
	Logger.Debugf("%s: %v", action, err)
	s.FinalMSG = formatError(action, err)
	return ErrReported
}
