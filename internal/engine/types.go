package engine

import (
	"context"
	"errors"
)

// Kind classifies a StepError.
type Kind string

const (
	KindDirectoryAccess Kind = "directory access"
	KindCompile         Kind = "compile"
	KindArchive         Kind = "archive"
	KindRelocate        Kind = "relocate"
	KindLink            Kind = "link"
	KindCleanup         Kind = "cleanup"
)

// StepError represents a failure tied to a specific path.
// Only KindCompile errors stop a build; every other kind is recorded and the
// build proceeds.
type StepError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *StepError) Error() string {
	return string(e.Kind) + " " + e.Path + ": " + e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err must abort the build: a compile failure or a
// cancelled build context. A recorded StepError of any other kind is never
// fatal, even when its tool was stopped by a timeout.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var se *StepError
	if errors.As(err, &se) {
		return se.Kind == KindCompile
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Phase names a stage of the pipeline.
type Phase string

const (
	PhaseWalk    Phase = "walk"
	PhaseLink    Phase = "link"
	PhaseCleanup Phase = "cleanup"
)

// ArchiveAction records an archive built from one directory and relocated
// to the root.
type ArchiveAction struct {
	Dir  string // directory the archive was built in
	Name string // e.g. "widgets.a"
	Path string // final location at the root
}

// WalkResult holds the outcome of the directory walk.
type WalkResult struct {
	Visited  []string // every directory listed, in visit order
	Compiled []string // object paths produced below the root
	Archives []ArchiveAction
	Errors   []StepError
}

// LinkResult holds the outcome of the root link step.
type LinkResult struct {
	Compiled []string // object paths produced at the root
	Objects  []string // object names passed to the linker
	Archives []string // archive names passed to the linker
	Output   string   // executable path, empty if linking failed
	Errors   []StepError
}

// Linked reports whether the executable was produced.
func (r *LinkResult) Linked() bool {
	return r != nil && r.Output != ""
}

// CleanResult holds the outcome of the cleanup pass.
type CleanResult struct {
	Removed []string // paths relative to the root
	Errors  []StepError
}

// BuildResult holds the outcome of a full pipeline run. Phases that did not
// run are nil.
type BuildResult struct {
	Walk  *WalkResult
	Link  *LinkResult
	Clean *CleanResult
}

// Errors returns every non-fatal error recorded across all phases.
func (r *BuildResult) Errors() []StepError {
	var errs []StepError
	if r.Walk != nil {
		errs = append(errs, r.Walk.Errors...)
	}
	if r.Link != nil {
		errs = append(errs, r.Link.Errors...)
	}
	if r.Clean != nil {
		errs = append(errs, r.Clean.Errors...)
	}
	return errs
}
