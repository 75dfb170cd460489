package main

import (
	"context"
	"fmt"
)

type versionCmd struct{ r *root }

func (v *versionCmd) Run(ctx context.Context) error {
	fmt.Fprintf(v.r.stdout, "%s version %s", v.r.program, version)
	if commit != "" {
		fmt.Fprintf(v.r.stdout, " (%s)", commit)
	}
	if date != "" {
		fmt.Fprintf(v.r.stdout, " built %s", date)
	}
	fmt.Fprintln(v.r.stdout)
	return nil
}
