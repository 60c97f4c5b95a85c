package host

import (
	"os"
	"strconv"
	"strings"
)

// readSysfsString returns the trimmed content of a one-line sysfs file,
// "" on any error.
func readSysfsString(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(data))
}

// readSysfsInt returns the integer in a sysfs file and whether it parsed.
func readSysfsInt(path string) (int64, bool) {
	value := readSysfsString(path)
	if value == "" {
		return 0, false
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}
