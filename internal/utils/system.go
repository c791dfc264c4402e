package utils

import (
	"errors"
	"os"
	"os/user"
)

// ActorEnv overrides the identity recorded in audit entries and git commits,
// for CI jobs whose local account name means nothing.
const ActorEnv = "RDC_ACTOR"

// GetUsername returns the current username. Containers often run as a uid
// with no passwd entry, so $USER and $USERNAME are consulted when the
// lookup fails.
func GetUsername() (string, error) {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username, nil
	}
	for _, env := range []string{"USER", "USERNAME"} {
		if name := os.Getenv(env); name != "" {
			return name, nil
		}
	}
	return "", errors.New("cannot determine the current user")
}

// GetHostname returns the system hostname.
func GetHostname() (string, error) {
	return os.Hostname()
}

// Actor identifies whoever runs rdc: $RDC_ACTOR when set, otherwise
// "user@host" with "unknown" standing in for parts that cannot be read.
func Actor() string {
	if actor := os.Getenv(ActorEnv); actor != "" {
		return actor
	}

	username, err := GetUsername()
	if err != nil {
		username = "unknown"
	}
	hostname, err := GetHostname()
	if err != nil || hostname == "" {
		hostname = "unknown"
	}
	return username + "@" + hostname
}
