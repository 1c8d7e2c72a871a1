// Package flagx helps several independent flag sets share os.Args: each
// consumer filters the arguments down to the flags it owns before parsing.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args made of allowed flags and their
// values. Both "-f value" and "-f=value" forms are recognised; a following
// argument that starts with "-" is never taken as a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// JsonConfigFlags returns the config file path given with -c or -config in
// os.Args, or an empty string when neither is present.
func JsonConfigFlags() string {
	return JsonConfigFlagsFrom(os.Args[1:])
}

// JsonConfigFlagsFrom is JsonConfigFlags over an explicit argument list.
func JsonConfigFlagsFrom(args []string) string {
	var config string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "path to config file")
	fs.StringVar(&config, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return config
}
