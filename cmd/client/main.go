package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-sync-keeper/internal/client"
	"github.com/MKhiriev/go-sync-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	if err := client.NewRootCommand(info.String()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
