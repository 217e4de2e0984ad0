package service

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"myregistrar/domain"
	"myregistrar/helpers"
)

// HostLookup returns the host part used in derived service URLs: the hostname, or an IPv4 address when preferIP is set.
type HostLookup func(preferIP bool) (string, error)

// ErrServiceURLUnresolvable is returned by NewApplication when neither a service URL nor a port is configured.
var ErrServiceURLUnresolvable = errors.New("service url must be set when no port is configured")

// NewApplication derives the instance metadata announced to the registry.
//
// Rules: ServiceURL is the explicit value, else ServiceBaseURL, else http://{host}:{Port}. ManagementURL is the
// explicit value, else ServiceURL + ManagementPath. HealthURL is the explicit value, else ManagementURL + "/health".
// Name defaults to domain.DefaultApplicationName. Metadata is copied. Panics on nil lookup.
//
// Returns: (Application, nil); (zero, error) when the service URL cannot be derived or a resulting URL is not absolute.
//
// Called from cmd serve before the registration manager is built.
func NewApplication(cfg domain.InstanceConfig, lookup HostLookup) (domain.Application, error) {
	helpers.NilPanic(lookup, "service.application.go: host lookup is required")

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = domain.DefaultApplicationName
	}
	serviceURL, err := deriveServiceURL(cfg, lookup)
	if err != nil {
		return domain.Application{}, err
	}
	managementURL := strings.TrimSpace(cfg.ManagementURL)
	if managementURL == "" {
		managementURL = joinURLPath(serviceURL, cfg.ManagementPath)
	}
	healthURL := strings.TrimSpace(cfg.HealthURL)
	if healthURL == "" {
		healthURL = joinURLPath(managementURL, "health")
	}
	for field, raw := range map[string]string{"serviceUrl": serviceURL, "managementUrl": managementURL, "healthUrl": healthURL} {
		if err := requireAbsoluteURL(raw); err != nil {
			return domain.Application{}, fmt.Errorf("%s %q: %w", field, raw, err)
		}
	}
	metadata := make(map[string]string, len(cfg.Metadata))
	for k, v := range cfg.Metadata {
		metadata[k] = v
	}
	return domain.Application{
		Name:          name,
		ServiceURL:    serviceURL,
		ManagementURL: managementURL,
		HealthURL:     healthURL,
		Metadata:      metadata,
	}, nil
}

func deriveServiceURL(cfg domain.InstanceConfig, lookup HostLookup) (string, error) {
	if u := strings.TrimSpace(cfg.ServiceURL); u != "" {
		return u, nil
	}
	if u := strings.TrimSpace(cfg.ServiceBaseURL); u != "" {
		return strings.TrimRight(u, "/"), nil
	}
	if cfg.Port <= 0 {
		return "", ErrServiceURLUnresolvable
	}
	host, err := lookup(cfg.PreferIP)
	if err != nil {
		return "", fmt.Errorf("resolve local host: %w", err)
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(cfg.Port)), nil
}

// joinURLPath appends path to base with exactly one slash between them; an empty path returns base without trailing slash.
func joinURLPath(base string, path string) string {
	base = strings.TrimRight(base, "/")
	p := strings.Trim(strings.TrimSpace(path), "/")
	if p == "" {
		return base
	}
	return base + "/" + p
}

func requireAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return errors.New("must be an absolute url")
	}
	return nil
}

// LocalHost is the production HostLookup: os.Hostname, or the first non-loopback IPv4 address when preferIP is set.
func LocalHost(preferIP bool) (string, error) {
	if !preferIP {
		return os.Hostname()
	}
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4.String(), nil
		}
	}
	return "", errors.New("no non-loopback ipv4 address found")
}
