package buildtool

import (
	"github.com/Christopher101112/build-tool/internal/engine"
	"github.com/Christopher101112/build-tool/internal/toolchain"
)

// Type aliases re-export engine result types as the public API.

type StepError = engine.StepError
type Kind = engine.Kind
type ArchiveAction = engine.ArchiveAction
type WalkResult = engine.WalkResult
type LinkResult = engine.LinkResult
type CleanResult = engine.CleanResult
type BuildResult = engine.BuildResult
type Plan = engine.Plan
type PlannedDir = engine.PlannedDir

// Toolchain is the compiler/archiver/linker contract a Client drives.
type Toolchain = toolchain.Toolchain

const (
	KindDirectoryAccess = engine.KindDirectoryAccess
	KindCompile         = engine.KindCompile
	KindArchive         = engine.KindArchive
	KindRelocate        = engine.KindRelocate
	KindLink            = engine.KindLink
	KindCleanup         = engine.KindCleanup
)

// IsFatal reports whether err aborted a build.
func IsFatal(err error) bool {
	return engine.IsFatal(err)
}
