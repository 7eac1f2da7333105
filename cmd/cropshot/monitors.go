package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

type monitorsCmd struct {
	*root
	fs  *flag.FlagSet
	out io.Writer
}

func parseMonitorsCmd(args []string, r *root) (*monitorsCmd, error) {
	fs := flag.NewFlagSet("monitors", flag.ExitOnError)
	cmd := &monitorsCmd{root: r, fs: fs, out: os.Stdout}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (m *monitorsCmd) FlagSet() *flag.FlagSet {
	return m.fs
}

func (m *monitorsCmd) Run() error {
	monitors, err := listMonitors()
	if err != nil {
		return fmt.Errorf("failed to list monitors: %w", err)
	}
	if len(monitors) == 0 {
		fmt.Fprintln(m.out, "no monitors available")
		return nil
	}
	fmt.Fprintln(m.out, "available monitors (* marks the primary monitor):")
	for _, mon := range monitors {
		marker := " "
		if mon.Primary {
			marker = "*"
		}
		w, h := mon.LogicalSize()
		fmt.Fprintf(m.out, "%s %d: %s %dx%d+%d+%d scale %g (%gx%g logical)\n",
			marker, mon.Index, mon.Name, mon.Rect.Dx(), mon.Rect.Dy(), mon.Rect.Min.X, mon.Rect.Min.Y, mon.Scale, w, h)
	}
	fmt.Fprintln(m.out, "selectors: primary, <index>, #<index>, name substring")
	return nil
}
