// Package misc holds build time information. Values are set by linker.
package misc

var (
	appName = "storynav"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
