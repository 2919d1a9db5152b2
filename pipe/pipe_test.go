package pipe

import (
	"io"
	"os"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestNewPipeRoundTrip(t *testing.T) {
	c := qt.New(t)
	r, w, err := New()
	c.Assert(err, qt.IsNil)
	go func() {
		w.Write([]byte("hello"))
		w.Close()
	}()
	got, err := io.ReadAll(r)
	c.Assert(err, qt.IsNil)
	c.Assert(string(got), qt.Equals, "hello")
}

func TestNullWriterDiscards(t *testing.T) {
	c := qt.New(t)
	n, err := Null.Write([]byte("anything"))
	c.Assert(err, qt.IsNil)
	c.Assert(n, qt.Equals, 8)
}

func TestNullReaderIsImmediatelyEOF(t *testing.T) {
	c := qt.New(t)
	buf := make([]byte, 10)
	n, err := NullReader.Read(buf)
	c.Assert(n, qt.Equals, 0)
	c.Assert(err, qt.Equals, io.EOF)
}

func TestCopyToStopsAtEOF(t *testing.T) {
	c := qt.New(t)
	r, w, err := New()
	c.Assert(err, qt.IsNil)
	go func() {
		w.Write([]byte("data"))
		w.Close()
	}()
	var out []byte
	sink := &sliceWriter{dst: &out}
	err = CopyTo(r, sink)
	c.Assert(err, qt.IsNil)
	c.Assert(string(out), qt.Equals, "data")
}

type sliceWriter struct{ dst *[]byte }

func (s *sliceWriter) Write(p []byte) (int, error) {
	*s.dst = append(*s.dst, p...)
	return len(p), nil
}
func (s *sliceWriter) Close() error      { return nil }
func (s *sliceWriter) Clone() Writer     { return s }
func (s *sliceWriter) IntoFile() *os.File { return nil }
