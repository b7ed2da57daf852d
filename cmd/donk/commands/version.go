package commands

import (
	"fmt"

	"go.trai.ch/donk/internal/build"
)

func versionTemplate() string {
	return fmt.Sprintf("{{.Name}} version {{.Version}} (commit: %s, date: %s)\n", build.Commit, build.Date)
}
