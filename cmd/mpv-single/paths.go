package main

import "github.com/jpalus/mpv/internal/paths"

// ///////////////////////////////////////////////
// Path Aliases
// ///////////////////////////////////////////////

// DataPaths aliases [paths.DataDir] into the main package so launcher code
// can reference path helpers without qualifying the internal package name.
type DataPaths = paths.DataDir
