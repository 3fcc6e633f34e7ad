package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/liquicity/transferd/internal/adapter/bridge"
	adaptershttp "github.com/liquicity/transferd/internal/adapter/http"
	"github.com/liquicity/transferd/internal/adapter/http/dto"
	"github.com/liquicity/transferd/internal/adapter/http/handler"
	"github.com/liquicity/transferd/internal/adapter/provider"
	pgrepo "github.com/liquicity/transferd/internal/adapter/repository/postgres"
	redisrepo "github.com/liquicity/transferd/internal/adapter/repository/redis"
	infraredis "github.com/liquicity/transferd/internal/infrastructure/redis"
	"github.com/liquicity/transferd/internal/usecase"
	"github.com/liquicity/transferd/tests/testutil"
)

func TestTransferFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	testDB.TruncateAll(ctx)

	pool := testDB.Pool
	txManager := pgrepo.NewTxManager(pool)
	outcomeRepo := pgrepo.NewOutcomeRepository(pool)
	retrier := pgrepo.NewRetrier()
	idGen := pgrepo.NewULIDGenerator()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)
	cache := redisrepo.NewCache(redisClient)

	registry := provider.NewRegistry(provider.Config{
		Treasury:    provider.TreasuryConfig{Sandbox: true},
		CardNetwork: provider.CardNetworkConfig{Sandbox: true},
		Bridge:      bridge.Config{MockMode: true},
	}, zerolog.Nop())

	saga := usecase.NewTransferSaga(usecase.TransferSagaConfig{
		Registry:                registry,
		Ledger:                  usecase.NewLedgerPorts(registry),
		IDGenerator:             idGen,
		Logger:                  zerolog.Nop(),
		DefaultSourceChain:      "ethereum",
		DefaultDestinationChain: "polygon",
	})

	outcomeUC := usecase.NewOutcomeUseCase(txManager, outcomeRepo, retrier, cache)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		TransferHandler:  handler.NewTransferHandler(saga, outcomeUC, registry, zerolog.Nop()),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
		Logger:           zerolog.Nop(),
	})

	t.Run("completed transfer end to end", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		req := dto.CreateTransferRequest{
			UserID:             testutil.GenerateID(),
			Amount:             decimal.NewFromFloat(250.50),
			Currency:           "USDC",
			SourceCountry:      "US",
			DestinationCountry: "MX",
		}

		body, _ := json.Marshal(req)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/transfers/", bytes.NewReader(body)))

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var resp dto.TransferResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		if resp.Status != "completed" {
			t.Fatalf("expected status completed, got %s (errors: %v)", resp.Status, resp.Errors)
		}

		if resp.Corridor != "US->MX" {
			t.Errorf("expected corridor US->MX, got %s", resp.Corridor)
		}

		if !resp.Amount.Equal(decimal.NewFromFloat(250.50)) {
			t.Errorf("expected amount 250.5, got %s", resp.Amount)
		}

		// The outcome must survive a round trip through postgres.
		w2 := httptest.NewRecorder()
		router.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/api/v1/transfers/"+resp.ID, nil))

		if w2.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w2.Code, w2.Body.String())
		}

		var fetched dto.TransferResponse
		if err := json.NewDecoder(w2.Body).Decode(&fetched); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		if fetched.ID != resp.ID {
			t.Errorf("expected ID %s, got %s", resp.ID, fetched.ID)
		}

		if fetched.Status != "completed" {
			t.Errorf("expected status completed, got %s", fetched.Status)
		}

		// All four steps should be recorded in execution order.
		w3 := httptest.NewRecorder()
		router.ServeHTTP(w3, httptest.NewRequest(http.MethodGet, "/api/v1/transfers/"+resp.ID+"/steps", nil))

		if w3.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w3.Code, w3.Body.String())
		}

		var steps []*dto.StepResponse
		if err := json.NewDecoder(w3.Body).Decode(&steps); err != nil {
			t.Fatalf("failed to parse steps: %v", err)
		}

		if len(steps) != 4 {
			t.Fatalf("expected 4 steps, got %d", len(steps))
		}

		want := []string{"debit", "bridge_onramp", "bridge_offramp", "payout"}
		for i, step := range steps {
			if step.Step != want[i] {
				t.Errorf("step %d: expected %s, got %s", i, want[i], step.Step)
			}

			if step.TransactionID == "" {
				t.Errorf("step %s: expected a transaction ID", step.Step)
			}
		}
	})

	t.Run("unsupported corridor fails without moving funds", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		req := dto.CreateTransferRequest{
			UserID:             testutil.GenerateID(),
			Amount:             decimal.NewFromInt(100),
			Currency:           "USDC",
			SourceCountry:      "US",
			DestinationCountry: "JP",
		}

		body, _ := json.Marshal(req)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/transfers/", bytes.NewReader(body)))

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var resp dto.TransferResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		if resp.Status != "failed" {
			t.Errorf("expected status failed, got %s", resp.Status)
		}

		if len(resp.Errors) == 0 {
			t.Errorf("expected an error explaining the rejection")
		}

		// A rejected transfer never executed a step.
		w2 := httptest.NewRecorder()
		router.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/api/v1/transfers/"+resp.ID+"/steps", nil))

		var steps []*dto.StepResponse
		if err := json.NewDecoder(w2.Body).Decode(&steps); err != nil {
			t.Fatalf("failed to parse steps: %v", err)
		}

		if len(steps) != 0 {
			t.Errorf("expected no steps, got %d", len(steps))
		}
	})

	t.Run("invalid body is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/transfers/", bytes.NewReader([]byte("{not json"))))

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("unknown transfer returns 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/transfers/"+testutil.GenerateID(), nil))

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d: %s", http.StatusNotFound, w.Code, w.Body.String())
		}
	})

	t.Run("idempotent transfer creation", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		req := dto.CreateTransferRequest{
			UserID:             testutil.GenerateID(),
			Amount:             decimal.NewFromInt(75),
			Currency:           "USDC",
			SourceCountry:      "US",
			DestinationCountry: "BR",
		}

		body, _ := json.Marshal(req)
		key := testutil.GenerateID()

		first := httptest.NewRequest(http.MethodPost, "/api/v1/transfers/", bytes.NewReader(body))
		first.Header.Set("Idempotency-Key", key)

		w1 := httptest.NewRecorder()
		router.ServeHTTP(w1, first)

		if w1.Code != http.StatusOK {
			t.Fatalf("first request failed: %d %s", w1.Code, w1.Body.String())
		}

		second := httptest.NewRequest(http.MethodPost, "/api/v1/transfers/", bytes.NewReader(body))
		second.Header.Set("Idempotency-Key", key)

		w2 := httptest.NewRecorder()
		router.ServeHTTP(w2, second)

		if w2.Code != http.StatusOK {
			t.Fatalf("second request failed: %d %s", w2.Code, w2.Body.String())
		}

		var resp1, resp2 dto.TransferResponse
		if err := json.NewDecoder(w1.Body).Decode(&resp1); err != nil {
			t.Fatalf("failed to parse first response: %v", err)
		}
		if err := json.NewDecoder(w2.Body).Decode(&resp2); err != nil {
			t.Fatalf("failed to parse second response: %v", err)
		}

		if resp1.ID != resp2.ID {
			t.Errorf("expected the replay to return the cached outcome, got %s vs %s", resp1.ID, resp2.ID)
		}
	})

	t.Run("list by status", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		req := dto.CreateTransferRequest{
			UserID:             testutil.GenerateID(),
			Amount:             decimal.NewFromInt(40),
			Currency:           "USDC",
			SourceCountry:      "CA",
			DestinationCountry: "GB",
		}

		body, _ := json.Marshal(req)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/transfers/", bytes.NewReader(body)))

		if w.Code != http.StatusOK {
			t.Fatalf("create failed: %d %s", w.Code, w.Body.String())
		}

		w2 := httptest.NewRecorder()
		router.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/api/v1/transfers/?status=completed&limit=10", nil))

		if w2.Code != http.StatusOK {
			t.Fatalf("list failed: %d %s", w2.Code, w2.Body.String())
		}

		var listed []*dto.TransferResponse
		if err := json.NewDecoder(w2.Body).Decode(&listed); err != nil {
			t.Fatalf("failed to parse list: %v", err)
		}

		if len(listed) != 1 || listed[0].Status != "completed" {
			t.Fatalf("expected one completed transfer, got %+v", listed)
		}

		w3 := httptest.NewRecorder()
		router.ServeHTTP(w3, httptest.NewRequest(http.MethodGet, "/api/v1/transfers/?status=bogus", nil))

		if w3.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for unknown status filter, got %d", w3.Code)
		}
	})

	t.Run("jurisdictions", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/jurisdictions", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}

		var resp dto.JurisdictionsResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		if len(resp.Jurisdictions) == 0 {
			t.Errorf("expected at least one jurisdiction")
		}
	})
}
