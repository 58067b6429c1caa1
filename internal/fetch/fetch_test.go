package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantErr    bool
		wantKind   Kind
	}{
		{
			name:       "ok",
			statusCode: http.StatusOK,
			body:       "<html><body>National Football League</body></html>",
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			wantErr:    true,
			wantKind:   KindStatus,
		},
		{
			name:       "server error",
			statusCode: http.StatusBadGateway,
			wantErr:    true,
			wantKind:   KindStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "plaintext-sports") {
					t.Errorf("User-Agent = %q, should contain 'plaintext-sports'", ua)
				}
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := New()
			defer c.Close()

			body, err := c.Get(context.Background(), server.URL, PageTimeout)
			if tt.wantErr {
				fe, ok := AsError(err)
				if !ok {
					t.Fatalf("Get() error = %v, want *Error", err)
				}
				if fe.Kind != tt.wantKind {
					t.Errorf("Kind = %q, want %q", fe.Kind, tt.wantKind)
				}
				if fe.Status != tt.statusCode {
					t.Errorf("Status = %d, want %d", fe.Status, tt.statusCode)
				}
				if !IsTransport(err) {
					t.Error("IsTransport() = false, want true")
				}
				return
			}
			if err != nil {
				t.Fatalf("Get() unexpected error: %v", err)
			}
			if body != tt.body {
				t.Errorf("body = %q, want %q", body, tt.body)
			}
		})
	}
}

func TestGet_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c := New()
	defer c.Close()

	_, err := c.Get(context.Background(), server.URL, 50*time.Millisecond)
	fe, ok := AsError(err)
	if !ok {
		t.Fatalf("Get() error = %v, want *Error", err)
	}
	if fe.Kind != KindTimeout {
		t.Errorf("Kind = %q, want %q", fe.Kind, KindTimeout)
	}
}

func TestGet_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := New()
	_, err := c.Get(context.Background(), url, PageTimeout)
	fe, ok := AsError(err)
	if !ok {
		t.Fatalf("Get() error = %v, want *Error", err)
	}
	if fe.Kind != KindUnreachable {
		t.Errorf("Kind = %q, want %q", fe.Kind, KindUnreachable)
	}
	if !strings.Contains(fe.Error(), url) {
		t.Errorf("Error() = %q, should mention %q", fe.Error(), url)
	}
}

func TestIsTransport_PlainError(t *testing.T) {
	if IsTransport(context.Canceled) {
		t.Error("IsTransport(context.Canceled) = true, want false")
	}
}

func TestNewWithHTTPClient_TLS(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("secure"))
	}))
	defer server.Close()

	c := NewWithHTTPClient(server.Client())
	defer c.Close()

	body, err := c.Get(context.Background(), server.URL, PageTimeout)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if body != "secure" {
		t.Errorf("body = %q, want %q", body, "secure")
	}
}
