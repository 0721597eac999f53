// FILE: lixenwraith/loclog/format.go
package loclog

import (
	"fmt"
	"strings"
)

// exceptionDetail renders the failure attached by Exception: the error in its
// detailed %+v form, then the stack. fmt contains panics raised by the error's
// own methods and renders them as "%!v(PANIC=...)".
func exceptionDetail(err error, stack string) string {
	var sb strings.Builder

	if err != nil {
		fmt.Fprintf(&sb, "%+v", err)
	}

	if stack != "" {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(stack)
	}

	return sb.String()
}
