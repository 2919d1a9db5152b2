//go:build unix

package pipe

import "syscall"

func dupFd(fd uintptr) (uintptr, error) {
	nfd, err := syscall.Dup(int(fd))
	if err != nil {
		return 0, err
	}
	return uintptr(nfd), nil
}
