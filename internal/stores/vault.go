package stores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"

	rerrors "github.com/rediacc/rdc/internal/errors"
	logger "github.com/rediacc/rdc/internal/logging"
)

const (
	vaultRequestTimeout = 30 * time.Second
	vaultConfigField    = "config"
)

// VaultAdapter stores configs in a HashiCorp Vault KV v2 mount. Each config
// is one secret whose single "config" field holds the JSON document.
type VaultAdapter struct {
	entry  VaultEntry
	client *retryablehttp.Client

	Log logger.Logger
}

// NewVaultAdapter returns an adapter for entry, filling in the default
// mount and prefix.
func NewVaultAdapter(entry VaultEntry) *VaultAdapter {
	entry.Address = strings.TrimRight(entry.Address, "/")
	entry.Mount = strings.Trim(entry.Mount, "/")
	if entry.Mount == "" {
		entry.Mount = defaultVaultMount
	}
	entry.Prefix = strings.Trim(entry.Prefix, "/")
	if entry.Prefix == "" {
		entry.Prefix = defaultVaultPrefix
	}

	client := retryablehttp.NewClient()
	client.HTTPClient = cleanhttp.DefaultPooledClient()
	client.HTTPClient.Timeout = vaultRequestTimeout
	client.RetryMax = 2
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.Logger = nil

	return &VaultAdapter{entry: entry, client: client}
}

// escapePath escapes each slash-separated segment of p.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

func (a *VaultAdapter) dataPath(name string) string {
	return escapePath(a.entry.Mount + "/data/" + a.entry.Prefix + "/" + name)
}

func (a *VaultAdapter) metadataPath(name string) string {
	if name == "" {
		return escapePath(a.entry.Mount + "/metadata/" + a.entry.Prefix)
	}
	return escapePath(a.entry.Mount + "/metadata/" + a.entry.Prefix + "/" + name)
}

type vaultResponse struct {
	status int
	body   []byte
}

// do sends one request to the Vault HTTP API. A non-nil error means the
// request itself failed; HTTP error statuses are returned for the caller to
// interpret.
func (a *VaultAdapter) do(ctx context.Context, method, apiPath string, query url.Values, payload any) (*vaultResponse, error) {
	target := a.entry.Address + "/v1/" + apiPath
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body []byte
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			return nil, fmt.Errorf("encoding vault request: %w", err)
		}
	}

	var rawBody interface{}
	if body != nil {
		rawBody = body
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, rawBody)
	if err != nil {
		return nil, rerrors.NewStorageError("vault "+strings.ToLower(method), apiPath, err)
	}
	if a.entry.Token != "" {
		req.Header.Set("X-Vault-Token", a.entry.Token)
	}
	if a.entry.Namespace != "" {
		req.Header.Set("X-Vault-Namespace", a.entry.Namespace)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	a.Log.Debugf("vault %s %s", method, apiPath)
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, rerrors.NewStorageError("vault "+strings.ToLower(method), apiPath, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, rerrors.NewStorageError("vault "+strings.ToLower(method), apiPath, err)
	}
	return &vaultResponse{status: resp.StatusCode, body: data}, nil
}

// statusError turns an unexpected HTTP status into a storage error carrying
// Vault's own error messages.
func statusError(op, apiPath string, resp *vaultResponse) error {
	var payload struct {
		Errors []string `json:"errors"`
	}
	message := http.StatusText(resp.status)
	if json.Unmarshal(resp.body, &payload) == nil && len(payload.Errors) > 0 {
		message = strings.Join(payload.Errors, "; ")
	}
	return rerrors.NewStorageError(op, apiPath, fmt.Errorf("vault returned %d: %s", resp.status, message))
}

// readConfig fetches name's secret. It returns (nil, nil) when the secret
// does not exist, an ErrConfigCorrupt error when it exists but cannot be
// decoded, and a storage error when Vault could not be read.
func (a *VaultAdapter) readConfig(ctx context.Context, name string) (*RdcConfig, error) {
	apiPath := a.dataPath(name)
	resp, err := a.do(ctx, http.MethodGet, apiPath, nil, nil)
	if err != nil {
		return nil, err
	}

	switch resp.status {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, statusError("vault read", apiPath, resp)
	}

	var secret struct {
		Data struct {
			Data map[string]any `json:"data"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.body, &secret); err != nil {
		return nil, fmt.Errorf("%w: %v", rerrors.ErrConfigCorrupt, err)
	}
	if secret.Data.Data == nil {
		return nil, nil
	}

	raw, ok := secret.Data.Data[vaultConfigField].(string)
	if !ok {
		return nil, fmt.Errorf("%w: secret has no %q field", rerrors.ErrConfigCorrupt, vaultConfigField)
	}
	return decodeConfig([]byte(raw))
}

func (a *VaultAdapter) Push(ctx context.Context, config *RdcConfig, name string) (*PushResult, error) {
	if err := validName(name); err != nil {
		return &PushResult{Err: err}, nil
	}
	if err := config.Validate(); err != nil {
		return &PushResult{Err: err}, nil
	}

	remote, err := a.readConfig(ctx, name)
	if errors.Is(err, rerrors.ErrConfigCorrupt) {
		a.Log.Debugf("Ignoring unreadable remote config %s: %v", name, err)
		remote = nil
	} else if err != nil {
		return nil, err
	}

	result := checkPush(remote, config)
	if !result.Success {
		return result, nil
	}

	data, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("encoding config %s: %w", name, err)
	}

	apiPath := a.dataPath(name)
	resp, err := a.do(ctx, http.MethodPost, apiPath, nil, map[string]any{
		"data": map[string]string{vaultConfigField: string(data)},
	})
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusOK && resp.status != http.StatusNoContent {
		return nil, statusError("vault write", apiPath, resp)
	}
	return result, nil
}

func (a *VaultAdapter) Pull(ctx context.Context, name string) (*PullResult, error) {
	if err := validName(name); err != nil {
		return &PullResult{Err: err}, nil
	}

	config, err := a.readConfig(ctx, name)
	if errors.Is(err, rerrors.ErrConfigCorrupt) {
		return &PullResult{Err: fmt.Errorf("%s: %w", name, err)}, nil
	}
	if err != nil {
		return nil, err
	}
	if config == nil {
		return &PullResult{Err: notFound(name)}, nil
	}
	return &PullResult{Success: true, Config: config}, nil
}

// List uses Vault's LIST-over-GET convention on the metadata path.
func (a *VaultAdapter) List(ctx context.Context) ([]string, error) {
	apiPath := a.metadataPath("")
	resp, err := a.do(ctx, http.MethodGet, apiPath, url.Values{"list": {"true"}}, nil)
	if err != nil {
		return nil, err
	}

	switch resp.status {
	case http.StatusOK:
	case http.StatusNotFound:
		return []string{}, nil
	default:
		return nil, statusError("vault list", apiPath, resp)
	}

	var listing struct {
		Data struct {
			Keys []string `json:"keys"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.body, &listing); err != nil {
		return nil, rerrors.NewStorageError("vault list", apiPath, fmt.Errorf("decoding response: %w", err))
	}

	names := []string{}
	for _, key := range listing.Data.Keys {
		if key == "" || strings.HasSuffix(key, "/") {
			continue
		}
		names = append(names, key)
	}
	sort.Strings(names)
	return names, nil
}

// Delete permanently removes every version of name through the metadata path.
func (a *VaultAdapter) Delete(ctx context.Context, name string) (*DeleteResult, error) {
	if err := validName(name); err != nil {
		return &DeleteResult{Err: err}, nil
	}

	apiPath := a.metadataPath(name)
	resp, err := a.do(ctx, http.MethodGet, apiPath, nil, nil)
	if err != nil {
		return nil, err
	}
	switch resp.status {
	case http.StatusOK:
	case http.StatusNotFound:
		return &DeleteResult{Err: notFound(name)}, nil
	default:
		return nil, statusError("vault delete", apiPath, resp)
	}

	resp, err = a.do(ctx, http.MethodDelete, apiPath, nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusOK && resp.status != http.StatusNoContent {
		return nil, statusError("vault delete", apiPath, resp)
	}
	return &DeleteResult{Success: true}, nil
}

// Verify requires an initialized, unsealed cluster and a token that passes
// lookup-self.
func (a *VaultAdapter) Verify(ctx context.Context) bool {
	resp, err := a.do(ctx, http.MethodGet, "sys/health", url.Values{"standbyok": {"true"}}, nil)
	if err != nil {
		a.Log.Debugf("Vault health check failed: %v", err)
		return false
	}

	var health struct {
		Initialized bool `json:"initialized"`
		Sealed      bool `json:"sealed"`
	}
	if err := json.Unmarshal(resp.body, &health); err != nil {
		a.Log.Debugf("Vault health response unreadable (status %d): %v", resp.status, err)
		return false
	}
	if !health.Initialized || health.Sealed {
		a.Log.Debugf("Vault is not usable: initialized=%t sealed=%t", health.Initialized, health.Sealed)
		return false
	}

	resp, err = a.do(ctx, http.MethodGet, "auth/token/lookup-self", nil, nil)
	if err != nil {
		a.Log.Debugf("Vault token lookup failed: %v", err)
		return false
	}
	if resp.status != http.StatusOK {
		a.Log.Debugf("Vault token lookup returned %d", resp.status)
		return false
	}
	return true
}
