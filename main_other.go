//go:build !linux

package main

func configurePlatform() {}
