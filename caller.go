// FILE: lixenwraith/loclog/caller.go
package loclog

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"github.com/lixenwraith/loclog/formatter"
)

// resolveCaller returns the source location skip frames above runtime.Callers.
// It never panics; an unusable stack yields an unresolved CallSite.
func resolveCaller(skip int) (site formatter.CallSite) {
	defer func() {
		if r := recover(); r != nil {
			site = formatter.CallSite{}
		}
	}()

	var pc [4]uintptr
	n := runtime.Callers(skip, pc[:])
	if n == 0 {
		return formatter.CallSite{}
	}
	frame, _ := runtime.CallersFrames(pc[:n]).Next()
	if frame.File == "" || frame.Function == "" {
		return formatter.CallSite{}
	}

	return formatter.CallSite{
		File:     filepath.Base(frame.File),
		Line:     frame.Line,
		Function: functionName(frame.Function),
		OK:       true,
	}
}

// functionName turns a fully qualified runtime function name into the call-site
// function field: "name()" for functions, methods and closures, or the module
// sentinel for package initialization.
func functionName(qualified string) string {
	// Strip import path, then package name
	name := qualified
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	name = stripTypeParams(name)

	// Package-level variable initializers run in the compiler-generated "init"
	if name == "init" {
		return formatter.ModuleSentinel
	}

	parts := strings.Split(name, ".")
	// Method receivers: "(*T).M" or "T.M" when the receiver is a value type
	if len(parts) > 1 && (strings.HasPrefix(parts[0], "(") || !isClosureName(parts[1])) {
		parts = parts[1:]
	}
	// User-declared init functions are numbered "init.0", "init.1", ...
	if len(parts) == 2 && parts[0] == "init" && isDigits(parts[1]) {
		parts = parts[:1]
	}

	return strings.Join(parts, ".") + "()"
}

// isClosureName reports whether a name element is generated for a closure or wrapper
func isClosureName(s string) bool {
	for _, prefix := range []string{"func", "gowrap", "deferwrap"} {
		if strings.HasPrefix(s, prefix) && isDigits(s[len(prefix):]) {
			return true
		}
	}
	return isDigits(s)
}

// isDigits reports whether s is a non-empty run of decimal digits
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// stripTypeParams removes instantiation brackets such as "[...]" from generic names
func stripTypeParams(name string) string {
	for {
		open := strings.IndexByte(name, '[')
		if open < 0 {
			return name
		}
		closing := strings.IndexByte(name[open:], ']')
		if closing < 0 {
			return name
		}
		name = name[:open] + name[open+closing+1:]
	}
}

// captureStack renders the goroutine's stack starting skip frames above runtime.Callers
func captureStack(skip int) string {
	pc := make([]uintptr, maxStackFrames)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Stack (most recent call first):")
	frames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			fmt.Fprintf(&sb, "\n  %s:%d %s", frame.File, frame.Line, functionName(frame.Function))
		}
		if !more {
			break
		}
	}
	return sb.String()
}
