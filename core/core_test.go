package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lumeweb.com/provision/db/models"
	"go.uber.org/zap"
)

func TestLookup(t *testing.T) {
	missing := NotFound()
	assert.False(t, missing.Found())
	assert.Nil(t, missing.Customer())

	customer := &models.Customer{Email: "a@example.com"}
	found := Found(customer)
	assert.True(t, found.Found())
	assert.Same(t, customer, found.Customer())
}

func TestStoreURL(t *testing.T) {
	tests := []struct {
		base  string
		route string
		want  string
	}{
		{"https://shop.example.com", ROUTE_RESET_PASSWORD, "https://shop.example.com/customer/account/resetPassword/"},
		{"https://shop.example.com/", "/customer/account/resetPassword", "https://shop.example.com/customer/account/resetPassword/"},
		{"https://shop.example.com/de", "checkout/", "https://shop.example.com/de/checkout/"},
	}

	for _, tt := range tests {
		store := Store{BaseURL: tt.base}
		assert.Equal(t, tt.want, store.URL(tt.route))
	}
}

func TestStoreResetPasswordURL(t *testing.T) {
	store := Store{BaseURL: "https://shop.example.com/"}

	assert.Equal(t, "https://shop.example.com/customer/account/resetPassword/?token=8ab9cd07-aa", store.ResetPasswordURL("8ab9cd07-aa"))
	assert.Equal(t, "https://shop.example.com/customer/account/resetPassword/?token=a%2Bb", store.ResetPasswordURL("a+b"))
}

type testService struct{}

func (testService) ID() string { return "test" }

func TestContextServices(t *testing.T) {
	ctx, err := NewContext(nil, NewLoggerFromZap(zap.NewNop()), ContextWithService(testService{}))
	require.NoError(t, err)

	assert.Equal(t, testService{}, GetService[testService](ctx, "test"))
	assert.Panics(t, func() { GetService[testService](ctx, "missing") })
	assert.Panics(t, func() { GetService[ProvisioningService](ctx, "test") })
}

func TestContextLifecycleFuncs(t *testing.T) {
	var calls []string

	ctx, err := NewContext(nil, NewLoggerFromZap(zap.NewNop()),
		ContextWithStartupFunc(func(Context) error { calls = append(calls, "start"); return nil }),
		ContextWithExitFunc(func(Context) error { calls = append(calls, "exit"); return nil }),
	)
	require.NoError(t, err)

	ctx, err = ctx.Apply(ContextWithStartupFunc(func(Context) error { calls = append(calls, "late"); return nil }))
	require.NoError(t, err)

	for _, f := range ctx.StartupFuncs() {
		require.NoError(t, f(ctx))
	}
	for _, f := range ctx.ExitFuncs() {
		require.NoError(t, f(ctx))
	}

	assert.Equal(t, []string{"start", "late", "exit"}, calls)
}

type testEvent struct {
	Event
}

func TestEventRegistry(t *testing.T) {
	RegisterEvent("test.fired", func() Eventer { return &testEvent{} })

	assert.Contains(t, GetEvents(), "test.fired")
	assert.Panics(t, func() {
		RegisterEvent("test.fired", func() Eventer { return &testEvent{} })
	})

	first, err := NewEvent("test.fired")
	require.NoError(t, err)
	second, err := NewEvent("test.fired")
	require.NoError(t, err)

	assert.Equal(t, "test.fired", first.Name())
	assert.NotSame(t, first, second)

	first.Set("k", "v")
	assert.Nil(t, second.Get("k"))

	_, err = NewEvent("test.missing")
	assert.Error(t, err)
}
