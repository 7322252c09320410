package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
)

// NetAddress is a host:port flag value. An empty host means every interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags reads the server command line.
//
//	-a                 http address host:port
//	-grpc-address      grpc address host:port
//	-storage           blob store backend: s3, postgres, file or memory
//	-d                 postgres DSN
//	-f                 file backend directory
//	-s3-bucket, -s3-endpoint, -s3-region, -s3-prefix
//	-c, -config        json config path
//	-token-sign-key, -token-issuer, -token-duration
//	-request-timeout   per-request deadline
func parseFlags(args []string) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	var httpAddr, grpcAddr NetAddress

	fs := flag.NewFlagSet("go-sync-server", flag.ContinueOnError)
	fs.Var(&httpAddr, "a", "HTTP address host:port")
	fs.Var(&grpcAddr, "grpc-address", "gRPC address host:port")

	fs.StringVar(&cfg.Storage.Backend, "storage", "", "Blob store backend: s3, postgres, file or memory")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Postgres DSN")
	fs.StringVar(&cfg.Storage.Files.Dir, "f", "", "File backend directory")
	fs.StringVar(&cfg.Storage.S3.Bucket, "s3-bucket", "", "S3 bucket name")
	fs.StringVar(&cfg.Storage.S3.Endpoint, "s3-endpoint", "", "S3-compatible endpoint URL")
	fs.StringVar(&cfg.Storage.S3.Region, "s3-region", "", "S3 region")
	fs.StringVar(&cfg.Storage.S3.Prefix, "s3-prefix", "", "S3 object key prefix")

	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")

	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = httpAddr.String()
	cfg.Server.GRPCAddress = grpcAddr.String()
	return cfg, nil
}

func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set accepts "host:port", "[ipv6]:port" and ":port". A host other than
// localhost must be an IP literal.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("need address in a form `host:port`: %w", err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", rawPort, err)
	}
	if port < 1 || port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
