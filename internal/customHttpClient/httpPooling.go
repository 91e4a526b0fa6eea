package customHttpClient

import (
	"net/http"
	"sync"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/config"
)

var (
	once   sync.Once
	shared *http.Client
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// Pooled returns the process-wide HTTP client with connection reuse, so the
// completion service doesn't pay a TLS handshake per question.
func Pooled() *http.Client {
	once.Do(func() {
		shared = &http.Client{Transport: customTransport}
	})
	return shared
}
