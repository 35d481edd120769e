//go:build !windows

package main

import (
	"errors"
	"runtime"
)

func openSource(string) (source, error) {
	return nil, errors.New("audio sessions are not available on " + runtime.GOOS)
}
