package commands

import (
	_ "embed"
	"io"

	"go.trai.ch/zerr"
)

//go:embed completion.bash
var completionScript string

func writeCompletionScript(w io.Writer) error {
	if _, err := io.WriteString(w, completionScript); err != nil {
		return zerr.Wrap(err, "failed to write completion script")
	}
	return nil
}
