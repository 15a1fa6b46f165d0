// Package flagx lets several components parse their own subset of the
// command line without tripping over each other's flags.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps only the flags named in names, together with their
// values. Names are given without dashes: "-d", "--d", "-d=x" and "--d=x"
// all match "d". A separate value is taken from the next argument unless it
// starts with a dash. Everything else, positionals included, is dropped.
func FilterArgs(args []string, names ...string) []string {
	allowed := make(map[string]bool, len(names))
	for _, n := range names {
		allowed[n] = true
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		name, inline, ok := flagName(args[i])
		if !ok || !allowed[name] {
			continue
		}
		filtered = append(filtered, args[i])
		if !inline && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

// flagName splits "-name", "--name" and "-name=value" forms.
func flagName(arg string) (name string, inline, ok bool) {
	if !strings.HasPrefix(arg, "-") {
		return "", false, false
	}
	s := strings.TrimPrefix(arg[1:], "-")
	name, _, inline = strings.Cut(s, "=")
	return name, inline, name != ""
}

// ConfigFileFlag returns the path given with -c or -config, or "" when
// neither is present. The last occurrence wins.
func ConfigFileFlag(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, "c", "config"))

	return path
}
