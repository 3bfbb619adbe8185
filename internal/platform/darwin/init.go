//go:build darwin && cgo

package darwin

import "github.com/mj1618/axwatch/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Trust:     NewTrust(),
			Processes: NewProcesses(),
			Automator: NewAutomator(),
			RunLoop:   NewRunLoop(),
			Shell:     NewShell(),
		}, nil
	}
}
