package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/screener/internal/api"
	"github.com/JaimeStill/screener/internal/config"
	"github.com/JaimeStill/screener/internal/infrastructure"
	"github.com/JaimeStill/screener/pkg/database"
	"github.com/JaimeStill/screener/pkg/metrics"
	"github.com/JaimeStill/screener/pkg/pagination"
	"github.com/JaimeStill/screener/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func validConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     "1m",
			WriteTimeout:    "15m",
			ShutdownTimeout: "30s",
		},
		Logging: config.LoggingConfig{Level: "info", Format: "text"},
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "screener",
			User:            "screener",
			Password:        "screener",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			ContainerName:    "cvs",
			ConnectionString: azuriteConnString,
		},
		Metrics: metrics.Config{Path: "/metrics", Namespace: "screener"},
		API: config.APIConfig{
			BasePath:      "/api",
			MaxUploadSize: "25MB",
			Pagination: pagination.Config{
				DefaultPageSize: 20,
				MaxPageSize:     100,
			},
		},
		Scoring: config.ScoringConfig{
			Provider: "gemini",
			APIKey:   "test-key",
			Model:    "gemini-2.5-flash",
			Timeout:  "60s",
		},
		Ingest: config.IngestConfig{
			Workers:       4,
			Dispatchers:   1,
			QueueSize:     8,
			TaskRetention: "1h",
		},
		Clustering: config.ClusteringConfig{
			DefaultK:      3,
			MaxIterations: 100,
			Features:      "score",
		},
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
	}
}

func setupInfra(t *testing.T) *infrastructure.Infrastructure {
	t.Helper()
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}
	t.Cleanup(func() {
		infra.Lifecycle.Shutdown(5 * time.Second)
	})
	return infra
}

func TestNewModule(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	if m.Prefix() != "/api" {
		t.Errorf("prefix: got %s, want /api", m.Prefix())
	}
}

func TestNewModuleMissingScoringKey(t *testing.T) {
	cfg := validConfig()
	cfg.Scoring.APIKey = ""
	infra := setupInfra(t)

	if _, err := api.NewModule(cfg, infra); err == nil {
		t.Fatal("expected error without a scoring api key")
	}
}

func TestModuleRoutes(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"malformed ingestion id", "GET", "/api/ingestions/bad", http.StatusBadRequest},
		{"unknown ingestion", "GET", "/api/ingestions/" + uuid.NewString(), http.StatusNotFound},
		{"malformed cohort k", "GET", "/api/batches/" + uuid.NewString() + "/cohorts?k=zero", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			m.Serve(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestNewRuntime(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)

	runtime := api.NewRuntime(cfg, infra)

	if runtime.Pagination.DefaultPageSize != 20 {
		t.Errorf("pagination default page size: got %d, want 20", runtime.Pagination.DefaultPageSize)
	}
	if runtime.Pagination.MaxPageSize != 100 {
		t.Errorf("pagination max page size: got %d, want 100", runtime.Pagination.MaxPageSize)
	}
	if runtime.MaxUploadBytes != 25*1024*1024 {
		t.Errorf("max upload bytes: got %d, want %d", runtime.MaxUploadBytes, 25*1024*1024)
	}
	if runtime.Logger == nil {
		t.Error("runtime logger is nil")
	}
	if runtime.Metrics == nil {
		t.Error("runtime metrics is nil")
	}
	if runtime.Database == nil {
		t.Error("runtime database is nil")
	}
	if runtime.Storage == nil {
		t.Error("runtime storage is nil")
	}
	if runtime.Lifecycle == nil {
		t.Error("runtime lifecycle is nil")
	}
}

func TestNewDomain(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)
	runtime := api.NewRuntime(cfg, infra)

	domain, err := api.NewDomain(cfg, runtime)
	if err != nil {
		t.Fatalf("NewDomain() error = %v", err)
	}

	if domain.Jobs == nil || domain.Batches == nil || domain.Candidates == nil || domain.Cohorts == nil {
		t.Error("domain system is nil")
	}
	if domain.Scoring == nil || domain.Pipeline == nil || domain.Dispatcher == nil {
		t.Error("ingestion system is nil")
	}
}
