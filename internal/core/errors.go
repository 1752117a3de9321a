package core

import (
	"errors"
	"fmt"
)

type Stage string

const (
	StageBuild         Stage = "build"
	StageLock          Stage = "lock"
	StageClean         Stage = "clean"
	StageCopyAssets    Stage = "copy-assets"
	StageResolveParams Stage = "resolve-params"
	StageExpandRoutes  Stage = "expand-routes"
	StageRender        Stage = "render"
	StageWriteMarker   Stage = "write-marker"
)

var ErrLocked = errors.New("output directory is locked by another run")

// ConfigurationError reports a route that cannot be expanded, most commonly a
// dynamic route with no parameter mapping.
type ConfigurationError struct {
	Route  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("could not generate route %s: %s", e.Route, e.Reason)
}

type ParamResolutionError struct {
	Route string
	Err   error
}

func (e *ParamResolutionError) Error() string {
	return fmt.Sprintf("could not resolve route params for %s: %v", e.Route, e.Err)
}

func (e *ParamResolutionError) Unwrap() error {
	return e.Err
}

type RenderError struct {
	Route string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render failed for %s: %v", e.Route, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// StageError attributes a fatal error to the pipeline stage it halted.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// FailedRoute extracts the route a failure is attributed to, if any.
func FailedRoute(err error) (string, bool) {
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return cfgErr.Route, true
	}
	var paramErr *ParamResolutionError
	if errors.As(err, &paramErr) {
		return paramErr.Route, true
	}
	var renderErr *RenderError
	if errors.As(err, &renderErr) {
		return renderErr.Route, true
	}
	return "", false
}
