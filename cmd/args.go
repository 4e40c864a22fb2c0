package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// InvalidMode is printed when the first argument is not a known mode.
const InvalidMode = "Invalid user mode. Terminating program now."

var errMissingFiles = errors.New("expected <customerFile> <concertFile> <bookingFile> [venueFile...]")

// ValidMode reports whether args starts with a user mode or a help/version
// request. Anything else is rejected before flag parsing.
func ValidMode(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "--customer", "--admin", "-h", "--help", "help", "-v", "--version", "version":
		return true
	}
	return false
}

type fileArgs struct {
	customers string
	concerts  string
	bookings  string
	venues    []string
}

type customerArgs struct {
	username string
	password string
	files    fileArgs
}

// parseCustomerArgs takes up to two leading arguments that do not look like
// paths as username and password.
func parseCustomerArgs(args []string) (customerArgs, error) {
	var out customerArgs
	i := 0
	for i < len(args) && i < 2 && !looksLikePath(args[i]) {
		i++
	}
	if i > 0 {
		out.username = args[0]
	}
	if i > 1 {
		out.password = args[1]
	}
	files, err := parseFileArgs(args[i:])
	if err != nil {
		return customerArgs{}, err
	}
	out.files = files
	return out, nil
}

func parseFileArgs(args []string) (fileArgs, error) {
	if len(args) < 3 {
		return fileArgs{}, fmt.Errorf("%w: got %d argument(s)", errMissingFiles, len(args))
	}
	return fileArgs{
		customers: args[0],
		concerts:  args[1],
		bookings:  args[2],
		venues:    append([]string(nil), args[3:]...),
	}, nil
}

// looksLikePath treats an argument as a data file when it has a directory
// part or an extension, starts with "assets", or names an existing file.
func looksLikePath(arg string) bool {
	if strings.ContainsAny(arg, `/\`) || filepath.Ext(arg) != "" || strings.HasPrefix(arg, "assets") {
		return true
	}
	info, err := os.Stat(arg)
	return err == nil && !info.IsDir()
}

// withDefaultVenue appends the fallback venue file unless it is already listed.
func withDefaultVenue(venues []string, defaultVenue string) []string {
	if defaultVenue == "" {
		return venues
	}
	for _, v := range venues {
		if filepath.Clean(v) == filepath.Clean(defaultVenue) {
			return venues
		}
	}
	return append(venues, defaultVenue)
}
