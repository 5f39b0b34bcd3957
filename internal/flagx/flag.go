// Package flagx helps several flag sets share os.Args: each consumer keeps
// only the flags it knows before calling flag.FlagSet.Parse.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args made of allowed flags and their
// values.
//
// valueFlags take an argument, either as the next token (-d dsn) or inline
// (-d=dsn). boolFlags never consume the next token, so "-seed-admin -a :80"
// keeps "-a" available to whoever parses it; they may still be written as
// -seed-admin=false.
func FilterArgs(args []string, valueFlags []string, boolFlags ...string) []string {
	values := make(map[string]struct{}, len(valueFlags))
	for _, f := range valueFlags {
		values[f] = struct{}{}
	}
	bools := make(map[string]struct{}, len(boolFlags))
	for _, f := range boolFlags {
		bools[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			_, isValue := values[name]
			_, isBool := bools[name]
			if isValue || isBool {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := bools[arg]; ok {
			filtered = append(filtered, arg)
			continue
		}

		if _, ok := values[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// JsonConfigFlags returns the path given with -c or -config, or "" when
// neither is present. Other arguments are ignored.
func JsonConfigFlags() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
