package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"currency-converter/internal/models"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
)

type refresherStub struct {
	calls atomic.Int32
	err   error
}

func (r *refresherStub) RefreshPopular(context.Context) ([]models.PopularPair, error) {
	r.calls.Add(1)
	return []models.PopularPair{{From: "EUR", To: "USD", Count: 1}}, r.err
}

func TestPopularRefresher_RunOnce(t *testing.T) {
	stub := &refresherStub{}
	p := NewPopularRefresher(stub, time.Minute, log.NewNopLogger())

	assert.NoError(t, p.RunOnce(context.Background()))
	assert.Equal(t, int32(1), stub.calls.Load())

	stub.err = errors.New("db down")
	assert.EqualError(t, p.RunOnce(context.Background()), "db down")
}

func TestPopularRefresher_Start(t *testing.T) {
	stub := &refresherStub{}
	p := NewPopularRefresher(stub, 5*time.Millisecond, log.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return stub.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop")
	}
}
