// Command shellrun is the CLI front-end for the shellrun interpreter
// (spec.md §4's supplemented "CLI front-end" component), grounded on the
// teacher's cmd/gosh/main.go and on TFMV-bash2go's pattern of wrapping
// mvdan.cc/sh/v3 behind a spf13/cobra command.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/shellrun/shellrun/builtin"
	"github.com/shellrun/shellrun/interp"
	"github.com/shellrun/shellrun/pipe"
	"github.com/shellrun/shellrun/state"
	"github.com/shellrun/shellrun/syntax"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	os.Exit(runMain(os.Args[1:]))
}

// runMain builds the cobra command fresh each call and executes it,
// returning the process exit code. Kept separate from main() so the
// testscript harness in main_test.go can drive it in-process without
// calling os.Exit itself.
func runMain(args []string) int {
	code := 0
	var commandString string

	root := &cobra.Command{
		Use:           "shellrun [script]",
		Short:         "A small POSIX-flavored shell interpreter",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := run(commandString, args)
			code = c
			return err
		},
	}
	root.Flags().StringVarP(&commandString, "command", "c", "", "run the given command string instead of a script or REPL")
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if code == 0 {
			code = 1
		}
	}
	return code
}

func run(commandString string, args []string) (int, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		<-sigs
		cancel()
	}()

	st, err := newState(ctx)
	if err != nil {
		return 1, err
	}
	in := interp.New()

	switch {
	case commandString != "":
		return runSource(ctx, in, st, "-c", []byte(commandString))
	case len(args) == 1:
		src, err := os.ReadFile(args[0])
		if err != nil {
			return 1, err
		}
		return runSource(ctx, in, st, args[0], src)
	default:
		return runREPL(ctx, in, st), nil
	}
}

func runSource(ctx context.Context, in *interp.Interp, st *state.State, filename string, src []byte) (int, error) {
	list, err := syntax.Parse(filename, src)
	if err != nil {
		return 1, err
	}
	res := in.Run(ctx, st, list, pipe.Stdin(), pipe.Stdout(), pipe.Stderr())
	if err := res.Handles.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return res.Code, nil
}

// runREPL drives an interactive prompt when stdin is a terminal,
// grounded on the teacher's cmd/gosh interactive loop, generalized to
// print the git-branch hint state.State tracks.
func runREPL(ctx context.Context, in *interp.Interp, st *state.State) int {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Fprint(os.Stderr, prompt(st))
		}
		if !scanner.Scan() {
			return st.LastCommandExitCode
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		list, err := syntax.Parse("<stdin>", []byte(line))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		res := in.Run(ctx, st, list, pipe.Stdin(), pipe.Stdout(), pipe.Stderr())
		st.ApplyChanges(res.Changes)
		st.LastCommandExitCode = res.Code
		if res.Exiting {
			return res.Code
		}
		if err := res.Handles.Wait(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

func prompt(st *state.State) string {
	base := filepath.Base(st.Cwd())
	if st.GitRepository {
		return fmt.Sprintf("%s (%s)$ ", base, st.GitBranch)
	}
	return base + "$ "
}

func newState(ctx context.Context) (*state.State, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	envVars := map[string]string{}
	for _, kv := range os.Environ() {
		name, value, _ := strings.Cut(kv, "=")
		envVars[name] = value
	}

	cfg := loadConfig()
	for name, value := range cfg.Env {
		envVars[name] = value
	}

	commands := map[string]state.Command{
		"cd":      builtin.Cd,
		"pwd":     builtin.Pwd,
		"export":  builtin.Export,
		"unset":   builtin.Unset,
		"alias":   builtin.Alias,
		"unalias": builtin.Unalias,
		"exit":    builtin.Exit,
		"true":    builtin.True,
		"false":   builtin.False,
		"echo":    builtin.Echo,
		"cat":     builtin.Cat,
		"set":     builtin.Set,
	}

	st := state.New(ctx, envVars, cwd, commands)
	if cfg.ExitOnError {
		st.ApplyChange(state.SetShellOptions{Option: state.ExitOnError, Value: true})
	}
	if cfg.Trace {
		st.ApplyChange(state.SetShellOptions{Option: state.PrintTrace, Value: true})
	}
	return st, nil
}
