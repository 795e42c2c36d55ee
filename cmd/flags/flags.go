package flags

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/ruteri/contract-registry-client/common"
	"github.com/ruteri/contract-registry-client/transport"
)

func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	logJSON := cCtx.Bool(LogJsonFlag.Name)
	logDebug := cCtx.Bool(LogDebugFlag.Name)
	logUID := cCtx.Bool(LogUidFlag.Name)
	logService := cCtx.String(LogServiceFlag.Name)

	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   logDebug,
		JSON:    logJSON,
		Service: logService,
		Version: common.Version,
	})

	if logUID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

// ConfigureClient resolves the registry endpoint and dial options.
// Flags set on the command line win over the config file, which wins over defaults.
func ConfigureClient(cCtx *cli.Context) (string, transport.DialOptions, error) {
	cfg := DefaultConfig()
	if path := cCtx.String(ConfigFlag.Name); path != "" {
		var err error
		cfg, err = LoadConfig(path)
		if err != nil {
			return "", transport.DialOptions{}, err
		}
	}

	if cCtx.IsSet(EndpointFlag.Name) {
		cfg.Endpoint = cCtx.String(EndpointFlag.Name)
	}
	if cCtx.IsSet(CallTimeoutFlag.Name) {
		cfg.CallTimeout = cCtx.Duration(CallTimeoutFlag.Name)
	}
	if cCtx.IsSet(MaxMsgBytesFlag.Name) {
		cfg.MaxMsgBytes = cCtx.Int(MaxMsgBytesFlag.Name)
	}

	return cfg.Endpoint, transport.DialOptions{
		CallTimeout: cfg.CallTimeout,
		MaxMsgBytes: cfg.MaxMsgBytes,
	}, nil
}

var ConfigFlag = &cli.StringFlag{
	Name:    "config",
	EnvVars: []string{"REGISTRY_CONFIG"},
	Usage:   "TOML file with client settings",
}

var EndpointFlag = &cli.StringFlag{
	Name:    "endpoint",
	Value:   DefaultEndpoint,
	EnvVars: []string{"REGISTRY_ENDPOINT"},
	Usage:   "contract registry service address (host:port)",
}

var CallTimeoutFlag = &cli.DurationFlag{
	Name:    "call-timeout",
	Value:   0,
	EnvVars: []string{"REGISTRY_CALL_TIMEOUT"},
	Usage:   "timeout for each remote call, 0 for none",
}

var MaxMsgBytesFlag = &cli.IntFlag{
	Name:  "max-msg-bytes",
	Value: 0,
	Usage: "maximum gRPC message size in bytes, 0 for the gRPC default",
}

var LogJsonFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}
var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}
var LogServiceFlag = &cli.StringFlag{
	Name:  "log-service",
	Value: "registry-client",
	Usage: "add 'service' tag to logs",
}

var ClientFlags = []cli.Flag{
	ConfigFlag,
	EndpointFlag,
	CallTimeoutFlag,
	MaxMsgBytesFlag,
}

var CommonFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
	LogServiceFlag,
}
