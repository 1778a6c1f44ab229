package main

import (
	"fmt"
	"strings"

	"github.com/alexflint/forum-publisher/forums"
)

type listForumsArgs struct{}

func (a *app) listForums(args *listForumsArgs) error {
	fmt.Fprintln(a.out, "Available forums:")
	for _, f := range forums.All() {
		fmt.Fprintf(a.out, "  %s (%s)\n", f.Key, strings.Join(f.Aliases, ", "))
		fmt.Fprintf(a.out, "    %s: %s\n", f.Name, f.BaseURL)
	}
	return nil
}
