package calc_go

import (
	"fmt"
	"strconv"
	"strings"
)

// / The version number of the current calc release.
const kCalcVersion = "1.2.0"

func Version() string { return kCalcVersion }

// / ParseVersion extracts the major and minor numbers of a dotted version.
func ParseVersion(version string) (major, minor int) {
	parts := strings.Split(version, ".")
	if len(parts) > 0 {
		major, _ = strconv.Atoi(parts[0])
	}
	if len(parts) > 1 {
		minor, _ = strconv.Atoi(parts[1])
	}
	return major, minor
}

// / CheckCalcVersion compares the running version with a config file's
// / required_version. A newer major version only warns.
func CheckCalcVersion(version string) (warning string, err error) {
	binMajor, binMinor := ParseVersion(kCalcVersion)
	fileMajor, fileMinor := ParseVersion(version)

	if binMajor > fileMajor {
		return fmt.Sprintf("calc executable version (%s) greater than config "+
			"required_version (%s); versions may be incompatible.", kCalcVersion, version), nil
	}
	if (binMajor == fileMajor && binMinor < fileMinor) || binMajor < fileMajor {
		return "", fmt.Errorf("calc version (%s) incompatible with config required_version (%s)",
			kCalcVersion, version)
	}
	return "", nil
}
