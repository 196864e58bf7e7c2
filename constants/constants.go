package constants

import "time"

const (
	AppName = "iosconfig"

	// EnvPrefix is prepended to every environment variable bound to a flag.
	EnvPrefix = "IOSCONFIG"

	DefaultConfigFile  = "~/.iosconfig.yaml"
	DefaultTemplateDir = "~/.iosconfig/templates"
)

// serial line defaults of a Cisco console port.
const (
	DefaultBaudRate    = 9600
	DefaultReadTimeout = time.Second
	DefaultSettleDelay = 2 * time.Second
	DefaultLineDelay   = 300 * time.Millisecond
)

// read windows used when collecting device output.
const (
	BackupWindow     = 10 * time.Second
	InterfacesWindow = 5 * time.Second
	PingWindow       = 3 * time.Second
	TracerouteWindow = 5 * time.Second
	CommandWindow    = 500 * time.Millisecond
)

const (
	FormatTable = "table"
	FormatPlain = "plain"
	FormatJSON  = "json"
)
