package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"myregistrar/domain"
	"myregistrar/helpers"
	"myregistrar/interfaces"
	"myregistrar/service"
)

const applicationsPath = "/api/applications"

// maxResponseBody bounds how much of a registry response is read.
const maxResponseBody = 1 << 20

// RegistryHTTP creates an interfaces.RegistryClient that talks to the monitoring registry over HTTP:
// POST baseURL/api/applications and DELETE baseURL/api/applications/{id}. Panics on empty baseURLs, an empty
// entry in baseURLs or nil client.
//
// Parameters: baseURLs — registry base URLs (e.g. http://admin:8080), tried in order, trailing slash trimmed;
// client — HTTP client (per-call bound comes from ctx); username, password — basic auth, sent only when username
// is set; registerOnce — stop at the first registry that accepts the registration.
//
// Returns: interfaces.RegistryClient (*registryHTTP).
//
// Called from cmd serve and cmd deregister.
func RegistryHTTP(baseURLs []string, client *http.Client, username, password string, registerOnce bool) interfaces.RegistryClient {
	if len(baseURLs) == 0 {
		panic("adapters.registry.go: registry url is required")
	}
	bases := make([]string, 0, len(baseURLs))
	for _, u := range baseURLs {
		bases = append(bases, strings.TrimRight(helpers.StrPanic(strings.TrimSpace(u), "adapters.registry.go: registry url is required"), "/"))
	}
	return &registryHTTP{
		baseURLs:     bases,
		client:       helpers.NilPanic(client, "adapters.registry.go: http client is required"),
		username:     username,
		password:     password,
		registerOnce: registerOnce,
	}
}

// registryHTTP implements interfaces.RegistryClient. Used by service.RegistrationManager for the register
// attempt on every tick and the single deregister call on shutdown.
type registryHTTP struct {
	baseURLs     []string
	client       *http.Client
	username     string
	password     string
	registerOnce bool
}

// applicationRequest is the JSON body of POST /api/applications.
type applicationRequest struct {
	Name          string            `json:"name"`
	ServiceURL    string            `json:"serviceUrl,omitempty"`
	ManagementURL string            `json:"managementUrl,omitempty"`
	HealthURL     string            `json:"healthUrl"`
	Metadata      map[string]string `json:"metadata"`
}

// registrationResponse is the JSON shape of a successful registration: { "id": "..." }.
type registrationResponse struct {
	ID string `json:"id"`
}

// Register posts app to each registry in order. With registerOnce the first accepted registration wins;
// otherwise every registry is tried and the first id is returned.
//
// Returns: (id, nil) when at least one registry accepted; ("", error) otherwise, where error is a
// *service.RegistryError for a single registry or the errors of all registries joined.
func (r *registryHTTP) Register(ctx context.Context, app domain.Application) (string, error) {
	metadata := app.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	body, err := json.Marshal(applicationRequest{
		Name:          app.Name,
		ServiceURL:    app.ServiceURL,
		ManagementURL: app.ManagementURL,
		HealthURL:     app.HealthURL,
		Metadata:      metadata,
	})
	if err != nil {
		return "", fmt.Errorf("encode application: %w", err)
	}

	var id string
	var errs []error
	for _, base := range r.baseURLs {
		got, err := r.registerAt(ctx, base, body)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if id == "" {
			id = got
		}
		if r.registerOnce {
			break
		}
	}
	if id != "" {
		return id, nil
	}
	return "", joinErrors(errs)
}

func (r *registryHTTP) registerAt(ctx context.Context, base string, body []byte) (string, error) {
	reqURL := base + applicationsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", service.NewConnectError("build register request for "+reqURL, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	r.authorize(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", transportError(ctx, "register at "+reqURL, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return "", transportError(ctx, "read register response from "+reqURL, err)
	}
	if err := statusError("register at "+reqURL, resp.StatusCode, raw); err != nil {
		return "", err
	}
	var out registrationResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", service.NewRejectedError("registry "+reqURL+" returned an invalid body", resp.StatusCode, err)
	}
	if out.ID == "" {
		return "", service.NewRejectedError("registry "+reqURL+" returned no id", resp.StatusCode, nil)
	}
	return out.ID, nil
}

// Deregister deletes registryID at every configured registry. 2xx and 404 count as success.
//
// Parameter registryID — id returned by Register; substituted in URL via url.PathEscape.
//
// Returns: nil when every registry succeeded; the joined failures otherwise.
func (r *registryHTTP) Deregister(ctx context.Context, registryID string) error {
	var errs []error
	for _, base := range r.baseURLs {
		if err := r.deregisterAt(ctx, base, registryID); err != nil {
			errs = append(errs, err)
		}
	}
	return joinErrors(errs)
}

func (r *registryHTTP) deregisterAt(ctx context.Context, base string, registryID string) error {
	reqURL := base + applicationsPath + "/" + url.PathEscape(registryID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, reqURL, nil)
	if err != nil {
		return service.NewConnectError("build deregister request for "+reqURL, err)
	}
	r.authorize(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return transportError(ctx, "deregister at "+reqURL, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if resp.StatusCode == http.StatusNotFound {
		// already gone
		return nil
	}
	return statusError("deregister at "+reqURL, resp.StatusCode, raw)
}

func (r *registryHTTP) authorize(req *http.Request) {
	if r.username != "" {
		req.SetBasicAuth(r.username, r.password)
	}
}

// transportError classifies a failed round trip: deadline or network timeout is a timeout, anything else
// means the registry could not be reached.
func transportError(ctx context.Context, op string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return service.NewTimeoutError(op+" timed out", err)
	}
	return service.NewConnectError(op+" failed", err)
}

// statusError maps a non-2xx status to a RegistryError; nil for 2xx.
func statusError(op string, statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	var inner error
	if msg := strings.TrimSpace(string(body)); msg != "" {
		if len(msg) > 256 {
			msg = msg[:256]
		}
		inner = errors.New(msg)
	}
	if statusCode == http.StatusNotFound {
		return service.NewNotFoundError(op+" returned not found", inner)
	}
	return service.NewRejectedError(op+" was rejected", statusCode, inner)
}

func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return errors.Join(errs...)
	}
}
