package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/thirtyday/internal/logger"
)

// UserFacing is implemented by errors that carry a message meant to be shown to the user
// instead of the full wrapped chain.
type UserFacing interface {
	UserMessage() string
}

// UserMessage returns the user-facing message of the first UserFacing error in err's chain,
// falling back to err.Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var uf UserFacing
	if stderrors.As(err, &uf) {
		return uf.UserMessage()
	}
	return err.Error()
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", UserMessage(err))
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
