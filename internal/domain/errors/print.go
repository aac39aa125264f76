package errors

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var kindColor = color.New(color.FgRed, color.Bold)

// Print writes "<Kind>Error: <message>" to w. Aborted prompts print nothing.
func Print(w io.Writer, err error) {
	if err == nil {
		return
	}
	kind := KindOf(err)
	if kind == KindPrompt {
		return
	}
	fmt.Fprintf(w, "%s: %s\n", kindColor.Sprintf("%sError", kind), err.Error())
}
