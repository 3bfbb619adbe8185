//go:build darwin

package darwin

/*
#include "axwatch_darwin.h"
#include <stdlib.h>
*/
import "C"
import (
	"fmt"
	"math"
	"time"
	"unsafe"

	"github.com/mj1618/axwatch/internal/model"
	"github.com/mj1618/axwatch/internal/platform"
)

// Processes implements platform.ProcessFinder with NSRunningApplication.
type Processes struct{}

// NewProcesses creates a macOS process finder.
func NewProcesses() *Processes {
	return &Processes{}
}

// RunningApplications returns the applications with bundleID in workspace
// order, or every regular application when bundleID is empty.
func (p *Processes) RunningApplications(bundleID string) ([]model.Process, error) {
	var cBundle *C.char
	if bundleID != "" {
		cBundle = C.CString(bundleID)
		defer C.free(unsafe.Pointer(cBundle))
	}

	var cApps *C.axw_app
	var cCount C.int
	if C.axw_running_apps(cBundle, &cApps, &cCount) != 0 {
		return nil, fmt.Errorf("failed to enumerate running applications")
	}
	defer C.axw_free_apps(cApps, cCount)

	count := int(cCount)
	if count == 0 {
		return []model.Process{}, nil
	}
	procs := make([]model.Process, 0, count)
	for _, ca := range unsafe.Slice(cApps, count) {
		procs = append(procs, toProcess(ca))
	}
	return procs, nil
}

// ApplicationForPID returns the running application with the given pid.
func (p *Processes) ApplicationForPID(pid int) (model.Process, error) {
	var ca C.axw_app
	if C.axw_app_for_pid(C.int(pid), &ca) != 0 {
		return model.Process{}, fmt.Errorf("pid %d: %w", pid, platform.ErrProcessNotFound)
	}
	defer C.free(unsafe.Pointer(ca.name))
	defer C.free(unsafe.Pointer(ca.bundleID))
	return toProcess(ca), nil
}

func toProcess(ca C.axw_app) model.Process {
	proc := model.Process{
		Name:     C.GoString(ca.name),
		BundleID: C.GoString(ca.bundleID),
		PID:      int(ca.pid),
		Active:   ca.active != 0,
	}
	if launched := float64(ca.launched); launched > 0 {
		sec, frac := math.Modf(launched)
		proc.LaunchedAt = time.Unix(int64(sec), int64(frac*1e9))
	}
	return proc
}
