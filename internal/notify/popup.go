package notify

import (
	"errors"
	"fmt"
	"strings"
)

const (
	compatPopupTool = "powershell.exe"

	// defaultPopupSeconds applies when the request has no timeout
	defaultPopupSeconds = 5

	// popupIconInformation is the WScript.Shell Popup style flag for the "i" icon
	popupIconInformation = "0x40"
)

// compatPopup implements Backend with a WScript.Shell popup raised by the
// Windows host's PowerShell. It only applies inside WSL.
type compatPopup struct {
	runner  Runner
	profile Profile
}

func newCompatPopup(r Runner, profile Profile) Backend {
	return &compatPopup{runner: r, profile: profile}
}

func (b *compatPopup) Name() BackendName { return CompatPopup }

func (b *compatPopup) Available() bool {
	return b.profile.CompatLayer && toolAvailable(b.runner, compatPopupTool)
}

func (b *compatPopup) Attempt(req Request) error {
	if err := requireTool(b.runner, CompatPopup, compatPopupTool); err != nil {
		return err
	}
	if !b.profile.CompatLayer {
		return &AttemptError{
			Backend: CompatPopup,
			Kind:    KindUnavailable,
			Err:     errors.New("not running under WSL"),
		}
	}
	return runTool(b.runner, CompatPopup, compatPopupArgs(req))
}

func compatPopupArgs(req Request) []string {
	return []string{
		compatPopupTool,
		"-NoProfile",
		"-ExecutionPolicy", "Bypass",
		"-Command", popupScript(req),
	}
}

// popupScript renders the PowerShell one-liner. Title and body end up inside
// single-quoted literals.
func popupScript(req Request) string {
	return fmt.Sprintf(
		"$ws = New-Object -ComObject WScript.Shell; $null = $ws.Popup('%s', %d, '%s', %s)",
		escapeForPowerShell(req.Body),
		PopupSeconds(req.Timeout),
		escapeForPowerShell(req.Title),
		popupIconInformation,
	)
}

// PopupSeconds converts a millisecond timeout to whole popup seconds, rounding
// half up with a floor of one second. A nil timeout gives the 5 second default.
func PopupSeconds(timeoutMs *int) int {
	if timeoutMs == nil {
		return defaultPopupSeconds
	}
	secs := (*timeoutMs + 500) / 1000
	if secs < 1 {
		return 1
	}
	return secs
}

// PowerShell accepts the typographic single quotes as string delimiters too.
var powerShellQuotes = strings.NewReplacer(
	"'", "''",
	"‘", "‘‘",
	"’", "’’",
	"‚", "‚‚",
	"‛", "‛‛",
)

// escapeForPowerShell doubles every single quote so s stays one literal
// inside a single-quoted PowerShell string.
func escapeForPowerShell(s string) string {
	return powerShellQuotes.Replace(s)
}
