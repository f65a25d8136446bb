package command

import (
	"strings"

	"github.com/vshell/vsh"
)

// classifyFlagError maps pflag's parse failures onto the error taxonomy.
// pflag only exposes these as formatted strings, so classification is by
// message shape.
func classifyFlagError(cmd string, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "unknown flag") || strings.Contains(msg, "unknown shorthand flag"):
		return vsh.WrapKind(vsh.KindUnknownFlag, err, "%s: %s", cmd, msg)
	case strings.Contains(msg, "needs an argument"):
		return vsh.WrapKind(vsh.KindMissingValue, err, "%s: %s", cmd, msg)
	default:
		return vsh.WrapKind(vsh.KindInvalidArgument, err, "%s: %s", cmd, msg)
	}
}
