//go:build !unix

package pipe

import "errors"

func dupFd(fd uintptr) (uintptr, error) {
	return 0, errors.New("pipe: descriptor duplication not supported on this platform")
}
