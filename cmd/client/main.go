package main

import (
	"github.com/MKhiriev/t4-api/internal/cli"
	"github.com/MKhiriev/t4-api/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cli.Execute(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
}
