package services

import (
	"log/slog"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// Well-known development account of the Azurite storage emulator.
const (
	azuriteAccountName = "devstoreaccount1"
	azuriteAccountKey  = "Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw=="
)

// usesAzurite reports whether a storage URL points at the local emulator.
// Real storage accounts are only reachable over https.
func usesAzurite(serviceURL string) bool {
	return strings.HasPrefix(serviceURL, "http://")
}

// newManagedIdentityCredential returns the credential chain used in Azure.
func newManagedIdentityCredential(service string) (azcore.TokenCredential, error) {
	slog.Info("using default Azure credentials", "service", service)
	return azidentity.NewDefaultAzureCredential(nil)
}
