package ports

import "go.trai.ch/donk/internal/core/domain"

// Renderer presents the progress of a run.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// OnRunStart is called once the lock is taken, before the first line.
	OnRunStart(command, configPath string)

	// OnLine is called before a non-quiet shell line runs.
	// depth is the number of named crossings of the frame running it.
	OnLine(crumb domain.Breadcrumb, depth int, line string)

	// OnRunComplete is called once with the final outcome of a started run.
	OnRunComplete(outcome domain.Outcome)
}
