package pipe

import "io"

// CopyTo copies everything from r to w until EOF, matching
// original_source's `pipe_to_sender`: writes to an inherited stdout/stderr
// destination are flushed immediately so progressive output isn't held in
// a hidden buffer, while writes to a pipe or file are left to the OS's own
// buffering.
func CopyTo(r Reader, w Writer) error {
	buf := make([]byte, 32*1024)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return rerr
		}
	}
}

// ToString drains r and returns its contents as a string, untrimmed.
func ToString(r Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
