//go:build windows

package output

import "syscall"

func sysProcAttr() *syscall.SysProcAttr {
	return nil
}
