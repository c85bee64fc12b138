package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"path/filepath"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	minLockPort = 20000
	maxLockPort = 39999
)

// InstanceGuard holds the single-instance lock for one data file.
type InstanceGuard struct {
	listener net.Listener
	address  string
	dataFile string
}

// AcquireSingleInstance binds a localhost port derived from the data file
// path. A second process pointed at the same file fails with
// ErrAlreadyRunning; processes using different files do not collide.
func AcquireSingleInstance(appName, dataFile string) (*InstanceGuard, error) {
	resolved := dataFile
	if absolute, err := filepath.Abs(dataFile); err == nil {
		resolved = absolute
	}
	resolved = filepath.Clean(resolved)

	address := fmt.Sprintf("127.0.0.1:%d", lockPort(appName, resolved))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is locked via %s", ErrAlreadyRunning, resolved, address)
	}
	return &InstanceGuard{listener: listener, address: address, dataFile: resolved}, nil
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.listener = nil
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

// DataFile returns the resolved path the lock protects.
func (guard *InstanceGuard) DataFile() string {
	if guard == nil {
		return ""
	}
	return guard.dataFile
}

func lockPort(appName, dataFile string) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	_, _ = hash.Write([]byte{0})
	_, _ = hash.Write([]byte(dataFile))
	rangeSize := maxLockPort - minLockPort + 1
	return minLockPort + int(hash.Sum32()%uint32(rangeSize))
}
