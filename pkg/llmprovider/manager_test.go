package llmprovider

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// mockProvider is a test implementation of the Provider interface
type mockProvider struct {
	name      string
	model     string
	err       error
	response  *Response
	callCount int
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	m.callCount++
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockProvider) Name() string  { return m.name }
func (m *mockProvider) Model() string { return m.model }

// statusErr mimics a client API error that classifies itself
type statusErr struct{ retry bool }

func (e statusErr) Error() string   { return "status error" }
func (e statusErr) Retryable() bool { return e.retry }

// mockLogger is a test implementation of the Logger interface
type mockLogger struct {
	mu           sync.Mutex
	infoMessages []string
	warnMessages []string
}

func (m *mockLogger) record(dst *[]string, arg []any) {
	if len(arg) == 0 {
		return
	}
	if msg, ok := arg[0].(string); ok {
		m.mu.Lock()
		*dst = append(*dst, msg)
		m.mu.Unlock()
	}
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    { m.record(&m.infoMessages, arg) }
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                    { m.record(&m.warnMessages, arg) }
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any) {
	m.record(&m.warnMessages, []any{template})
}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

func helloRequest() *Request {
	return &Request{Messages: []Message{UserMessage("Hello")}}
}

func TestGenerateContent_SuccessWithPrimaryProvider(t *testing.T) {
	primary := &mockProvider{
		name:  "primary",
		model: "primary-model",
		response: &Response{
			Text:         "Hello from primary provider",
			ProviderName: "primary",
			ModelName:    "primary-model",
			Usage:        &Usage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150},
		},
	}

	logger := &mockLogger{}
	manager := NewManager([]Provider{primary}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   3,
		RetryDelay:      100 * time.Millisecond,
	}, logger)

	resp, err := manager.GenerateContent(context.Background(), helloRequest())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.ProviderName != "primary" {
		t.Errorf("Expected provider name 'primary', got: %s", resp.ProviderName)
	}
	if primary.callCount != 1 {
		t.Errorf("Expected primary provider to be called once, got: %d", primary.callCount)
	}
	if len(logger.infoMessages) != 1 || len(logger.warnMessages) != 0 {
		t.Errorf("Expected 1 info and 0 warn, got %d/%d", len(logger.infoMessages), len(logger.warnMessages))
	}
}

func TestGenerateContent_FallbackToSecondaryProvider(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "primary-model", err: errors.New("connection reset")}
	secondary := &mockProvider{
		name:     "secondary",
		model:    "secondary-model",
		response: &Response{Text: "Hello from secondary provider", ProviderName: "secondary"},
	}

	logger := &mockLogger{}
	manager := NewManager([]Provider{primary, secondary}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   2,
		RetryDelay:      10 * time.Millisecond,
	}, logger)

	resp, err := manager.GenerateContent(context.Background(), helloRequest())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.ProviderName != "secondary" {
		t.Errorf("Expected provider name 'secondary', got: %s", resp.ProviderName)
	}
	if primary.callCount != 2 {
		t.Errorf("Expected primary provider to be called 2 times, got: %d", primary.callCount)
	}
	if secondary.callCount != 1 {
		t.Errorf("Expected secondary provider to be called once, got: %d", secondary.callCount)
	}
	if len(logger.warnMessages) != 1 {
		t.Errorf("Expected 1 warn log message, got: %d", len(logger.warnMessages))
	}
}

func TestGenerateContent_NonRetryableErrorSkipsRetries(t *testing.T) {
	primary := &mockProvider{name: "primary", err: statusErr{retry: false}}

	manager := NewManager([]Provider{primary}, &Config{
		RetryAttempts: 3,
		RetryDelay:    10 * time.Millisecond,
	}, &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), helloRequest())
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Fatalf("Expected ErrAllProvidersFailed, got: %v", err)
	}
	if primary.callCount != 1 {
		t.Errorf("Expected a single attempt for a non-retryable error, got: %d", primary.callCount)
	}
}

func TestGenerateContent_RetryableStatusIsRetried(t *testing.T) {
	primary := &mockProvider{name: "primary", err: statusErr{retry: true}}

	manager := NewManager([]Provider{primary}, &Config{
		RetryAttempts: 3,
		RetryDelay:    time.Millisecond,
	}, &mockLogger{})

	_, _ = manager.GenerateContent(context.Background(), helloRequest())
	if primary.callCount != 3 {
		t.Errorf("Expected 3 attempts, got: %d", primary.callCount)
	}
}

func TestGenerateContent_AllProvidersFail(t *testing.T) {
	primary := &mockProvider{name: "primary", err: errors.New("boom")}
	secondary := &mockProvider{name: "secondary", err: errors.New("boom")}

	logger := &mockLogger{}
	manager := NewManager([]Provider{primary, secondary}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   2,
		RetryDelay:      10 * time.Millisecond,
	}, logger)

	resp, err := manager.GenerateContent(context.Background(), helloRequest())
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Errorf("Expected ErrAllProvidersFailed, got: %v", err)
	}
	if resp != nil {
		t.Errorf("Expected nil response, got: %v", resp)
	}
	if primary.callCount != 2 || secondary.callCount != 2 {
		t.Errorf("Expected 2 calls each, got %d/%d", primary.callCount, secondary.callCount)
	}
	if len(logger.warnMessages) != 2 {
		t.Errorf("Expected 2 warn log messages, got: %d", len(logger.warnMessages))
	}
}

func TestGenerateContent_NoFallbackWhenDisabled(t *testing.T) {
	primary := &mockProvider{name: "primary", err: errors.New("boom")}
	secondary := &mockProvider{name: "secondary", response: &Response{ProviderName: "secondary"}}

	manager := NewManager([]Provider{primary, secondary}, &Config{
		FallbackEnabled: false,
		RetryAttempts:   2,
		RetryDelay:      10 * time.Millisecond,
	}, &mockLogger{})

	resp, err := manager.GenerateContent(context.Background(), helloRequest())
	if err == nil {
		t.Fatal("Expected error when primary fails and fallback is disabled, got nil")
	}
	if resp != nil {
		t.Errorf("Expected nil response, got: %v", resp)
	}
	if secondary.callCount != 0 {
		t.Errorf("Expected secondary provider to NOT be called, got: %d calls", secondary.callCount)
	}
}

func TestGenerateContent_NoProvidersConfigured(t *testing.T) {
	manager := NewManager([]Provider{}, &Config{RetryAttempts: 1}, &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), helloRequest())
	if !errors.Is(err, ErrNoProvidersConfigured) {
		t.Errorf("Expected ErrNoProvidersConfigured, got: %v", err)
	}
}

func TestGenerateContent_EmptyRequest(t *testing.T) {
	primary := &mockProvider{name: "primary"}
	manager := NewManager([]Provider{primary}, &Config{RetryAttempts: 1}, &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), &Request{})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("Expected ErrInvalidRequest, got: %v", err)
	}
	if primary.callCount != 0 {
		t.Errorf("Expected no provider call, got: %d", primary.callCount)
	}
}

func TestGenerateContent_RateLimiterHonoursContext(t *testing.T) {
	primary := &mockProvider{name: "primary", response: &Response{}}
	manager := NewManager([]Provider{primary}, &Config{
		RetryAttempts:   1,
		RateLimitPerMin: 1,
	}, &mockLogger{})

	if _, err := manager.GenerateContent(context.Background(), helloRequest()); err != nil {
		t.Fatalf("first call should pass the limiter: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := manager.GenerateContent(ctx, helloRequest()); err == nil {
		t.Fatal("Expected second call to be throttled past the deadline")
	}
	if primary.callCount != 1 {
		t.Errorf("Expected a single provider call, got: %d", primary.callCount)
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"network", errors.New("dial tcp: refused"), true},
		{"cancelled", context.Canceled, false},
		{"429", statusErr{retry: true}, true},
		{"400", statusErr{retry: false}, false},
		{"wrapped 400", &ProviderError{Provider: "x", Err: statusErr{retry: false}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetryable(tc.err); got != tc.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
