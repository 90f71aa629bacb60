package odysseus

import "crypto/subtle"

const (
	DefaultMaxUpload    = 20 << 20 // 20 MiB
	DefaultHistoryLimit = 50
)

// ServiceConfig holds the settings the API routes read on every request.
type ServiceConfig struct {
	// Tokens maps a client name to its bearer token. Uploads need no token
	// when the map is empty.
	Tokens       map[string]string `yaml:"tokens" toml:"tokens"`
	MaxUpload    int64             `yaml:"maxUpload" toml:"maxUpload"`
	Workers      int               `yaml:"workers" toml:"workers"`
	HistoryLimit int64             `yaml:"historyLimit" toml:"historyLimit"`
}

// Client returns the name of the client owning token.
func (s ServiceConfig) Client(token string) (string, bool) {
	if len(s.Tokens) == 0 {
		return "anonymous", true
	}
	for name, t := range s.Tokens {
		if subtle.ConstantTimeCompare([]byte(t), []byte(token)) == 1 {
			return name, true
		}
	}
	return "", false
}

func (s ServiceConfig) UploadLimit() int64 {
	if s.MaxUpload <= 0 {
		return DefaultMaxUpload
	}
	return s.MaxUpload
}

func (s ServiceConfig) ListLimit() int64 {
	if s.HistoryLimit <= 0 {
		return DefaultHistoryLimit
	}
	return s.HistoryLimit
}
