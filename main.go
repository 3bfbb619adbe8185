package main

import (
	"runtime"

	"github.com/mj1618/axwatch/cmd"
	_ "github.com/mj1618/axwatch/internal/platform/darwin"
)

func init() {
	// Accessibility observers deliver on the main run loop, so the main
	// goroutine has to stay on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	cmd.Execute()
}
