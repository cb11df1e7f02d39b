// version.go
package version

import "fmt"

// UserAgentBase holds the product token used in the User-Agent header
var UserAgentBase = "go-homekeeper-http-client"

// SDKVersion holds the current version of the SDK
var SDKVersion = "0.1.0"

// GetUserAgentHeader returns the User-Agent string sent with every request
func GetUserAgentHeader() string {
	return fmt.Sprintf("%s/%s", UserAgentBase, SDKVersion)
}
