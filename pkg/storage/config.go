package storage

import (
	"errors"
	"fmt"
	"os"
	"regexp"
)

// Config selects the blob container and how to authenticate. ConnectionString
// covers shared-key accounts and Azurite; ServiceURL uses Entra ID.
type Config struct {
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	ServiceURL       string `toml:"service_url"`
}

type Env struct {
	ContainerName    string
	ConnectionString string
	ServiceURL       string
}

var containerName = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9]|-[a-z0-9]){2,62}$`)

func (c *Config) Finalize(env *Env) error {
	if c.ContainerName == "" {
		c.ContainerName = "cvs"
	}

	if env != nil {
		for _, f := range c.fields(env) {
			if f.env == "" {
				continue
			}
			if v := os.Getenv(f.env); v != "" {
				*f.dst = v
			}
		}
	}

	if !containerName.MatchString(c.ContainerName) {
		return fmt.Errorf("invalid container_name %q", c.ContainerName)
	}
	if c.ConnectionString == "" && c.ServiceURL == "" {
		return errors.New("connection_string or service_url required")
	}
	return nil
}

// Merge copies the overlay's non-empty fields.
func (c *Config) Merge(overlay *Config) {
	src := overlay.fields(&Env{})
	for i, f := range c.fields(&Env{}) {
		if v := *src[i].dst; v != "" {
			*f.dst = v
		}
	}
}

type field struct {
	env string
	dst *string
}

func (c *Config) fields(env *Env) []field {
	return []field{
		{env.ContainerName, &c.ContainerName},
		{env.ConnectionString, &c.ConnectionString},
		{env.ServiceURL, &c.ServiceURL},
	}
}
