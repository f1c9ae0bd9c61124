package provider

// Recognized setting names.
const (
	OptionRegion    = "aws.region"
	OptionAccessKey = "aws.access.key"
	OptionSecretKey = "aws.secret.key"
	OptionEndpoint  = "aws.endpoint"
	OptionPrefix    = "secret.prefix"
	OptionTTL       = "secret.ttl.ms"
)

// DefaultMinimumSecretTTLMs is the default value of secret.ttl.ms (five minutes).
const DefaultMinimumSecretTTLMs int64 = 300000

// OptionType is the value type a setting accepts.
type OptionType string

const (
	TypeString   OptionType = "string"
	TypePassword OptionType = "password"
	TypeLong     OptionType = "long"
)

// Importance ranks how likely a setting needs attention from an operator.
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// OptionDef describes one recognized setting for host-side validation and
// documentation.
type OptionDef struct {
	Name          string     `json:"name" yaml:"name"`
	Type          OptionType `json:"type" yaml:"type"`
	Default       string     `json:"default" yaml:"default"`
	Importance    Importance `json:"importance" yaml:"importance"`
	Documentation string     `json:"documentation" yaml:"documentation"`
}

// ConfigDef returns the recognized settings in a stable order.
func ConfigDef() []OptionDef {
	return []OptionDef{
		{
			Name:       OptionRegion,
			Type:       TypeString,
			Importance: ImportanceMedium,
			Documentation: "Sets the region to be used by the client. For example `us-west-2`. " +
				"When empty the SDK default region chain is used.",
		},
		{
			Name:       OptionAccessKey,
			Type:       TypeString,
			Importance: ImportanceMedium,
			Documentation: "AWS access key ID to connect with. If this value is not set the " +
				"default credential chain is used. Requires `" + OptionSecretKey + "`.",
		},
		{
			Name:       OptionSecretKey,
			Type:       TypePassword,
			Importance: ImportanceMedium,
			Documentation: "AWS secret access key to connect with. Requires `" + OptionAccessKey + "`.",
		},
		{
			Name:          OptionEndpoint,
			Type:          TypeString,
			Importance:    ImportanceLow,
			Documentation: "Custom Secrets Manager endpoint, for LocalStack or testing.",
		},
		{
			Name:       OptionPrefix,
			Type:       TypeString,
			Importance: ImportanceMedium,
			Documentation: "Sets a prefix that will be added to all paths. For example `staging` or " +
				"`production`, so the same configuration can be used across environments.",
		},
		{
			Name:       OptionTTL,
			Type:       TypeLong,
			Default:    "300000",
			Importance: ImportanceLow,
			Documentation: "The minimum amount of time in milliseconds that a secret should be used. " +
				"After this TTL has expired the host should resolve the secret again.",
		},
	}
}
