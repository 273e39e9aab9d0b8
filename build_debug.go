//go:build dev || debug

package main

// debugBuild is set by `wails dev` and `wails build -debug`.
const debugBuild = true
