package db

import (
	"net/url"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/doodlesbykumbi/relaydb/pkg/log"
)

const redacted = "xxxxx"

// ExpandLocation trims leading whitespace and replaces a leading "~" with
// the home directory. If the home directory cannot be found the location
// is returned unexpanded.
func ExpandLocation(location string) string {
	location = strings.TrimLeft(location, " \t\r\n")
	if location != "~" && !strings.HasPrefix(location, "~/") {
		return location
	}

	home, err := homeDir()
	if err != nil {
		log.Warn().Err(err).Str("location", location).Msg("cannot expand home directory")
		return location
	}
	return filepath.Join(home, location[1:])
}

func homeDir() (string, error) {
	if home := os.Getenv("HOME"); home != "" {
		return home, nil
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.HomeDir, nil
}

// SanitizeLocation masks the password of a URL, a key=value connection
// string or a user:password@ DSN.
func SanitizeLocation(location string) string {
	if strings.Contains(location, "://") {
		if u, err := url.Parse(location); err == nil {
			return u.Redacted()
		}
	}

	if isKeyValue(location) {
		fields := strings.Fields(location)
		for i, field := range fields {
			if k, _, ok := strings.Cut(field, "="); ok && strings.EqualFold(k, "password") {
				fields[i] = k + "=" + redacted
			}
		}
		return strings.Join(fields, " ")
	}

	if at := strings.LastIndex(location, "@"); at > 0 {
		if name, _, ok := strings.Cut(location[:at], ":"); ok {
			return name + ":" + redacted + location[at:]
		}
	}
	return location
}

// isKeyValue reports whether location looks like "host=db user=turn".
func isKeyValue(location string) bool {
	fields := strings.Fields(location)
	if len(fields) == 0 {
		return false
	}
	k, _, ok := strings.Cut(fields[0], "=")
	return ok && k != "" && !strings.ContainsAny(k, ":@/()")
}
