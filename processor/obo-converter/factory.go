package oboconverter

import (
	"fmt"

	"github.com/c360studio/semstreams/component"
)

// RegistryInterface defines the minimal interface needed for registration.
type RegistryInterface interface {
	RegisterWithConfig(component.RegistrationConfig) error
}

// Register registers the obo-converter processor with the given registry.
func Register(registry RegistryInterface) error {
	if registry == nil {
		return fmt.Errorf("registry cannot be nil")
	}
	return registry.RegisterWithConfig(component.RegistrationConfig{
		Name:        componentName,
		Factory:     NewComponent,
		Schema:      oboConverterSchema,
		Type:        "processor",
		Protocol:    "nats",
		Domain:      "ontology",
		Description: "Request/reply service converting OBO documents to OWL",
		Version:     "0.1.0",
	})
}
