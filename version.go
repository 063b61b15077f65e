package featureflags

import (
	"fmt"
	"runtime/debug"

	"github.com/blang/semver/v4"
)

const userAgentName = "easytrade-featureflags-go"

// getUserAgent returns the User-Agent header value in the format
// "easytrade-featureflags-go/v<semver>". Builds without a valid module version
// (e.g. "(devel)") report "unknown".
func getUserAgent() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return userAgentName + "/unknown"
	}
	return formatUserAgent(info.Main.Version)
}

func formatUserAgent(version string) string {
	v, err := semver.ParseTolerant(version)
	if err != nil {
		return userAgentName + "/unknown"
	}
	return fmt.Sprintf("%s/v%s", userAgentName, v)
}
