package utils

import (
	"fmt"
	"runtime"

	"github.com/atotto/clipboard"
)

// CopyToClipboard places the rendered digest on the system clipboard.
func CopyToClipboard(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard operations not supported on %s", runtime.GOOS)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
