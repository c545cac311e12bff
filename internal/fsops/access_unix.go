//go:build unix

package fsops

import "golang.org/x/sys/unix"

// accessExecutable asks the kernel, so ACLs and the effective uid are honoured
func accessExecutable(path string) bool {
	return unix.Access(path, unix.X_OK) == nil
}
