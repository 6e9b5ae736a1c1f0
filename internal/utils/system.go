package utils

import (
	"os"
	"os/user"
)

// CurrentIdentity returns the user and host names recorded with audit
// entries. Either is empty when it cannot be determined. $USER is used when
// the account database has no entry for the process, as in some containers.
func CurrentIdentity() (username, hostname string) {
	if u, err := user.Current(); err == nil {
		username = u.Username
	} else {
		username = os.Getenv("USER")
	}
	hostname, _ = os.Hostname()
	return username, hostname
}
