package builtin

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/shellrun/shellrun/pipe"
	"github.com/shellrun/shellrun/state"
)

type capture struct{ buf bytes.Buffer }

func (c *capture) Write(p []byte) (int, error) { return c.buf.Write(p) }
func (c *capture) Close() error                 { return nil }
func (c *capture) Clone() pipe.Writer           { return c }
func (c *capture) IntoFile() *os.File           { return nil }

func newCtx(t *testing.T, args []string, vars map[string]string) (*state.CommandContext, *capture, *capture) {
	t.Helper()
	st := state.New(context.Background(), vars, t.TempDir(), nil)
	out, errW := &capture{}, &capture{}
	return &state.CommandContext{
		Args:   args,
		State:  st,
		Stdin:  pipe.NullReader,
		Stdout: out,
		Stderr: errW,
	}, out, errW
}

func TestEchoJoinsArgsWithSpaces(t *testing.T) {
	c := qt.New(t)
	cctx, out, _ := newCtx(t, []string{"echo", "a", "b"}, nil)
	res := Echo.Execute(context.Background(), cctx)
	c.Assert(res.Code, qt.Equals, 0)
	c.Assert(out.buf.String(), qt.Equals, "a b\n")
}

func TestEchoDashNSuppressesNewline(t *testing.T) {
	c := qt.New(t)
	cctx, out, _ := newCtx(t, []string{"echo", "-n", "a"}, nil)
	Echo.Execute(context.Background(), cctx)
	c.Assert(out.buf.String(), qt.Equals, "a")
}

func TestTrueAndFalseExitCodes(t *testing.T) {
	c := qt.New(t)
	cctx, _, _ := newCtx(t, []string{"true"}, nil)
	c.Assert(True.Execute(context.Background(), cctx).Code, qt.Equals, 0)
	c.Assert(False.Execute(context.Background(), cctx).Code, qt.Equals, 1)
}

func TestExitDefaultsToZero(t *testing.T) {
	c := qt.New(t)
	cctx, _, _ := newCtx(t, []string{"exit"}, nil)
	res := Exit.Execute(context.Background(), cctx)
	c.Assert(res.Exiting, qt.IsTrue)
	c.Assert(res.Code, qt.Equals, 0)
}

func TestExitParsesNumericArg(t *testing.T) {
	c := qt.New(t)
	cctx, _, _ := newCtx(t, []string{"exit", "7"}, nil)
	res := Exit.Execute(context.Background(), cctx)
	c.Assert(res.Code, qt.Equals, 7)
}

func TestExportWithValueEmitsSetEnvVar(t *testing.T) {
	c := qt.New(t)
	cctx, _, _ := newCtx(t, []string{"export", "X=1"}, nil)
	res := Export.Execute(context.Background(), cctx)
	c.Assert(res.Changes, qt.DeepEquals, []state.EnvChange{state.SetEnvVar{Name: "X", Value: "1"}})
}

func TestExportWithoutValuePromotesExistingShellVar(t *testing.T) {
	c := qt.New(t)
	cctx, _, _ := newCtx(t, []string{"export", "X"}, nil)
	cctx.State.ApplyChange(state.SetShellVar{Name: "X", Value: "prior"})
	res := Export.Execute(context.Background(), cctx)
	c.Assert(res.Changes, qt.DeepEquals, []state.EnvChange{state.SetEnvVar{Name: "X", Value: "prior"}})
}

func TestUnsetEmitsUnsetVarPerArg(t *testing.T) {
	c := qt.New(t)
	cctx, _, _ := newCtx(t, []string{"unset", "X", "Y"}, nil)
	res := Unset.Execute(context.Background(), cctx)
	c.Assert(res.Changes, qt.DeepEquals, []state.EnvChange{state.UnsetVar{Name: "X"}, state.UnsetVar{Name: "Y"}})
}

func TestAliasEmitsAliasCommandOnlyForArgsWithEquals(t *testing.T) {
	c := qt.New(t)
	cctx, _, _ := newCtx(t, []string{"alias", "ll=ls -la", "noequals"}, nil)
	res := Alias.Execute(context.Background(), cctx)
	c.Assert(res.Changes, qt.DeepEquals, []state.EnvChange{state.AliasCommand{Name: "ll", Value: "ls -la"}})
}

func TestUnaliasEmitsUnAliasCommand(t *testing.T) {
	c := qt.New(t)
	cctx, _, _ := newCtx(t, []string{"unalias", "ll"}, nil)
	res := Unalias.Execute(context.Background(), cctx)
	c.Assert(res.Changes, qt.DeepEquals, []state.EnvChange{state.UnAliasCommand{Name: "ll"}})
}

func TestPwdPrintsCurrentDirectory(t *testing.T) {
	c := qt.New(t)
	cctx, out, _ := newCtx(t, []string{"pwd"}, nil)
	Pwd.Execute(context.Background(), cctx)
	c.Assert(strings.TrimSpace(out.buf.String()), qt.Equals, cctx.State.Cwd())
}

func TestCdWithNoArgGoesHome(t *testing.T) {
	c := qt.New(t)
	home := t.TempDir()
	cctx, _, _ := newCtx(t, []string{"cd"}, map[string]string{"HOME": home})
	res := Cd.Execute(context.Background(), cctx)
	c.Assert(res.Code, qt.Equals, 0)
	c.Assert(res.Changes, qt.HasLen, 1)
	cd := res.Changes[0].(state.Cd)
	resolved, _ := filepath.EvalSymlinks(home)
	resolvedAbs, _ := filepath.Abs(resolved)
	c.Assert(cd.Path, qt.Equals, resolvedAbs)
}

func TestCdToNonDirectoryFails(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "notadir")
	os.WriteFile(file, []byte("x"), 0644)
	cctx, _, errW := newCtx(t, []string{"cd", file}, nil)
	res := Cd.Execute(context.Background(), cctx)
	c.Assert(res.Code, qt.Equals, 1)
	c.Assert(errW.buf.String(), qt.Not(qt.Equals), "")
}

func TestCatWithNoArgsCopiesStdin(t *testing.T) {
	c := qt.New(t)
	cctx, out, _ := newCtx(t, []string{"cat"}, nil)
	cctx.Stdin = strReader{strings.NewReader("piped in")}
	res := Cat.Execute(context.Background(), cctx)
	c.Assert(res.Code, qt.Equals, 0)
	c.Assert(out.buf.String(), qt.Equals, "piped in")
}

func TestCatReadsNamedFile(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	os.WriteFile(path, []byte("file contents"), 0644)
	cctx, out, _ := newCtx(t, []string{"cat", path}, nil)
	res := Cat.Execute(context.Background(), cctx)
	c.Assert(res.Code, qt.Equals, 0)
	c.Assert(out.buf.String(), qt.Equals, "file contents")
}

func TestCatReportsErrorForMissingFile(t *testing.T) {
	c := qt.New(t)
	cctx, _, errW := newCtx(t, []string{"cat", "/no/such/file"}, nil)
	res := Cat.Execute(context.Background(), cctx)
	c.Assert(res.Code, qt.Equals, 1)
	c.Assert(errW.buf.String(), qt.Not(qt.Equals), "")
}

type strReader struct{ r *strings.Reader }

func (s strReader) Read(p []byte) (int, error) { return s.r.Read(p) }
func (s strReader) Close() error               { return nil }
func (s strReader) Clone() pipe.Reader          { return s }
func (s strReader) IntoFile() *os.File          { return nil }
