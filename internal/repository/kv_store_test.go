package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/matheusrsantos97-lgtm/VetFlow/pkg/errors"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	assert.True(t, errors.Is(err, appErrors.ErrKeyNotFound))

	value := []byte(`{"a":1}`)
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'X'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	got[0] = 'Y'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(again))

	require.NoError(t, store.Delete(ctx, "k"))
	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.True(t, errors.Is(err, appErrors.ErrKeyNotFound))
}

func TestMemoryStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewMemoryStore().Set(ctx, "k", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNamespacedStorePrefixesKeys(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	store := NewNamespacedStore("vetflow:", inner)

	require.NoError(t, store.Set(ctx, "users", []byte("[]")))
	raw, err := inner.Get(ctx, "vetflow:users")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	raw, err = store.Get(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	require.NoError(t, store.Delete(ctx, "users"))
	_, err = inner.Get(ctx, "vetflow:users")
	assert.True(t, errors.Is(err, appErrors.ErrKeyNotFound))

	bare := NewNamespacedStore("", inner)
	require.NoError(t, bare.Set(ctx, "plain", []byte("1")))
	_, err = inner.Get(ctx, "plain")
	require.NoError(t, err)
}

type recordingObserver struct {
	ops  []string
	errs []error
}

func (o *recordingObserver) ObserveStore(op string, _ time.Duration, err error) {
	o.ops = append(o.ops, op)
	o.errs = append(o.errs, err)
}

func TestInstrumentedStoreReportsOperations(t *testing.T) {
	ctx := context.Background()
	observer := &recordingObserver{}
	store := NewInstrumentedStore(NewMemoryStore(), observer)

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	_, err := store.Get(ctx, "missing")
	require.Error(t, err)
	require.NoError(t, store.Delete(ctx, "k"))

	assert.Equal(t, []string{"set", "get", "delete"}, observer.ops)
	assert.Nil(t, observer.errs[0])
	assert.True(t, errors.Is(observer.errs[1], appErrors.ErrKeyNotFound))
}

func TestInstrumentedStoreWithoutObserver(t *testing.T) {
	inner := NewMemoryStore()
	assert.Same(t, inner, NewInstrumentedStore(inner, nil))
}
