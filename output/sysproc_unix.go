//go:build !windows

package output

import "syscall"

// sysProcAttr detaches the player so it outlives dashgrab.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}
