package state

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp"
)

func TestCloneIsolatesEnv(t *testing.T) {
	c := qt.New(t)
	st := New(context.Background(), map[string]string{"X": "outer"}, t.TempDir(), nil)
	clone := st.Clone()
	clone.ApplyChange(SetEnvVar{Name: "X", Value: "inner"})

	v, _ := st.GetVar("X")
	c.Assert(v, qt.Equals, "outer")
	cv, _ := clone.GetVar("X")
	c.Assert(cv, qt.Equals, "inner")
}

func TestApplyChangeCd(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	st := New(context.Background(), nil, dir, nil)
	sub := t.TempDir()
	st.ApplyChange(Cd{Path: sub})
	c.Assert(st.Cwd(), qt.Equals, sub)
	c.Assert(st.LastCommandCd, qt.IsTrue)
}

func TestApplyChangesResetsLastCommandCd(t *testing.T) {
	c := qt.New(t)
	st := New(context.Background(), nil, t.TempDir(), nil)
	st.ApplyChanges([]EnvChange{Cd{Path: t.TempDir()}})
	c.Assert(st.LastCommandCd, qt.IsTrue)
	st.ApplyChanges([]EnvChange{SetEnvVar{Name: "X", Value: "1"}})
	c.Assert(st.LastCommandCd, qt.IsFalse)
}

func TestExportedVarStaysExportedAfterShellVarSet(t *testing.T) {
	c := qt.New(t)
	st := New(context.Background(), map[string]string{"X": "1"}, t.TempDir(), nil)
	st.ApplyChange(SetShellVar{Name: "X", Value: "2"})
	v := st.EnvVars()["X"]
	c.Assert(v, qt.Equals, "2")
}

func TestAliasRoundTrip(t *testing.T) {
	c := qt.New(t)
	st := New(context.Background(), nil, t.TempDir(), nil)
	st.ApplyChange(AliasCommand{Name: "ll", Value: "ls -la"})
	toks, ok := st.Alias("ll")
	c.Assert(ok, qt.IsTrue)
	c.Assert(toks, qt.DeepEquals, []string{"ls", "-la"})
	st.ApplyChange(UnAliasCommand{Name: "ll"})
	_, ok = st.Alias("ll")
	c.Assert(ok, qt.IsFalse)
}

func TestCloneSnapshotMatchesExpectedEnv(t *testing.T) {
	st := New(context.Background(), map[string]string{"X": "1", "Y": "2"}, t.TempDir(), nil)
	clone := st.Clone()
	clone.ApplyChange(SetEnvVar{Name: "Z", Value: "3"})

	want := st.EnvVars()
	want["Z"] = "3"
	want["PWD"] = clone.Cwd()
	if diff := cmp.Diff(want, clone.EnvVars()); diff != "" {
		t.Fatalf("clone env mismatch (-want +got):\n%s", diff)
	}
}

func TestNewPanicsOnRelativeCwd(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for relative cwd")
		}
	}()
	New(context.Background(), nil, "relative/path", nil)
}
