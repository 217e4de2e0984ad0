package domain

// Application is the instance metadata announced to the registry: name, the URLs the registry
// uses to reach the instance, and free-form metadata. Built once at startup by
// service.NewApplication and never mutated afterwards.
type Application struct {
	Name          string
	ServiceURL    string
	ManagementURL string
	HealthURL     string
	Metadata      map[string]string
}

// InstanceConfig holds the raw values Application is derived from. Explicit URLs win over derived ones.
type InstanceConfig struct {
	Name           string
	ServiceURL     string
	ServiceBaseURL string
	ManagementURL  string
	ManagementPath string
	HealthURL      string
	Port           int  // port of the host HTTP listener, used when no service URL is given
	PreferIP       bool // announce the IPv4 address instead of the hostname
	Metadata       map[string]string
}

// DefaultApplicationName is used when no name is configured.
const DefaultApplicationName = "spring-boot-application"
