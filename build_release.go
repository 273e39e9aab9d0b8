//go:build !dev && !debug

package main

const debugBuild = false
