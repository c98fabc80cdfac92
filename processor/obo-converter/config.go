package oboconverter

import (
	"fmt"
	"reflect"
	"time"

	"github.com/c360studio/oboowl/export"
	"github.com/c360studio/semstreams/component"
)

// oboConverterSchema defines the configuration schema.
var oboConverterSchema = component.GenerateConfigSchema(reflect.TypeOf(Config{}))

// Config holds configuration for the obo-converter processor.
type Config struct {
	Ports *component.PortConfig `json:"ports" schema:"type:ports,description:Port configuration,category:basic"`

	// QueueGroup load-balances requests across converter instances.
	QueueGroup string `json:"queue_group" schema:"type:string,description:Queue group shared by converter instances,category:basic,default:oboowl-converters"`

	// Format serves requests that do not name one.
	Format string `json:"format" schema:"type:string,description:Default output format (ofn or json),category:basic,default:ofn"`

	// Timeout bounds a single conversion.
	Timeout string `json:"timeout" schema:"type:string,description:Maximum duration of one conversion,category:advanced,default:2m"`

	// SQLitePath stores every successful conversion when set.
	SQLitePath string `json:"sqlite_path" schema:"type:string,description:SQLite database receiving converted ontologies,category:advanced"`

	DefaultOntology        string            `json:"default_ontology" schema:"type:string,description:Ontology name for documents without an ontology tag,category:advanced"`
	IDSpaces               map[string]string `json:"idspaces" schema:"type:object,description:Id space to IRI prefix overrides,category:advanced"`
	EquivalentXrefPrefixes []string          `json:"equivalent_xref_prefixes" schema:"type:array,description:Xref namespaces treated as equivalent relations,category:advanced"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, ok := export.ParseFormat(c.Format); !ok {
		return fmt.Errorf("format %q: %w", c.Format, export.ErrUnsupportedFormat)
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout format: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("timeout must be non-negative")
		}
	}
	if c.Ports == nil || len(c.Ports.Inputs) == 0 || c.Ports.Inputs[0].Subject == "" {
		return fmt.Errorf("ports.inputs needs a request subject")
	}
	return nil
}

// GetTimeout returns the conversion timeout. Zero means unbounded.
func (c *Config) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// RequestSubject returns the subject requests arrive on.
func (c *Config) RequestSubject() string {
	return c.Ports.Inputs[0].Subject
}

// DefaultConfig returns the default configuration for obo-converter.
func DefaultConfig() Config {
	return Config{
		Ports: &component.PortConfig{
			Inputs: []component.PortDefinition{
				{
					Name:        "convert_requests",
					Type:        "nats",
					Subject:     "oboowl.convert",
					Required:    true,
					Description: "Conversion request/reply subject",
				},
			},
		},
		QueueGroup: "oboowl-converters",
		Format:     string(export.FormatFunctional),
		Timeout:    "2m",
	}
}
