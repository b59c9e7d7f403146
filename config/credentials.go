package config

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Credentials locates the Google credentials JSON: the contents of the
// environment variable if it is set, otherwise the file.
type Credentials struct {
	Env  string `yaml:"env"`
	File string `yaml:"file"`
}

func (c Credentials) JSON() ([]byte, error) {
	if c.Env != "" {
		if v := strings.TrimSpace(os.Getenv(c.Env)); v != "" {
			return []byte(v), nil
		}
	}

	if c.File == "" {
		return nil, fmt.Errorf("no credentials in $%v and no credentials file", c.Env)
	}

	return os.ReadFile(c.File)
}

// Client returns an HTTP client authorised for the scopes. Service account
// credentials are used as is; OAuth2 client credentials need a token previously
// saved to the tokens file.
func (c Credentials) Client(ctx context.Context, scopes ...string) (*http.Client, error) {
	b, err := c.JSON()
	if err != nil {
		return nil, err
	}

	var kind struct {
		Type      string          `json:"type"`
		Installed json.RawMessage `json:"installed"`
		Web       json.RawMessage `json:"web"`
	}

	if err := json.Unmarshal(b, &kind); err != nil {
		return nil, fmt.Errorf("invalid credentials (%w)", err)
	}

	switch {
	case kind.Type == "service_account":
		config, err := google.JWTConfigFromJSON(b, scopes...)
		if err != nil {
			return nil, err
		}

		return config.Client(ctx), nil

	case kind.Installed != nil || kind.Web != nil:
		config, err := google.ConfigFromJSON(b, scopes...)
		if err != nil {
			return nil, err
		}

		token, err := tokenFromFile(c.Tokens())
		if err != nil {
			return nil, fmt.Errorf("no OAuth2 token for %v (%w)", c.File, err)
		}

		return config.Client(ctx, token), nil

	default:
		return nil, fmt.Errorf("unsupported credentials type '%v'", kind.Type)
	}
}

// Tokens returns the path of the OAuth2 tokens file that accompanies the
// credentials file.
func (c Credentials) Tokens() string {
	dir, file := filepath.Split(c.File)
	name := strings.TrimSuffix(file, filepath.Ext(file))

	return filepath.Join(dir, fmt.Sprintf("%s.tokens", name))
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	token := oauth2.Token{}
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, err
	}

	return &token, nil
}
