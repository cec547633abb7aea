package otp

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

func TestGenerateCodeShape(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, CodeLength)
		assert.NotEqual(t, byte('0'), code[0])
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', code)
		}
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	p := Pending{ID: "v1", Phone: "9876543210", Code: "123456", ExpiresAt: time.Now().Add(20 * time.Millisecond)}
	require.NoError(t, s.Save(ctx, p, 20*time.Millisecond))

	got, err := s.Get(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, p.Code, got.Code)

	time.Sleep(40 * time.Millisecond)

	_, err = s.Get(ctx, "v1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreTakeIsSingleUse(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, Pending{ID: "v2", Code: "111111"}, time.Minute))

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Take(ctx, "v2"); err == nil {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
}

func TestMemoryStoreRecordFailure(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, Pending{ID: "v3", Code: "222222"}, time.Minute))

	for want := 2; want > 0; want-- {
		left, err := s.RecordFailure(ctx, "v3", 3)
		require.NoError(t, err)
		assert.Equal(t, want, left)
	}

	got, err := s.Get(ctx, "v3")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Attempts)

	left, err := s.RecordFailure(ctx, "v3", 3)
	require.NoError(t, err)
	assert.Zero(t, left)

	_, err = s.Get(ctx, "v3")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.RecordFailure(ctx, "v3", 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreRecordFailureKeepsTTL(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, Pending{ID: "v4", Code: "333333"}, 30*time.Millisecond))

	_, err := s.RecordFailure(ctx, "v4", MaxAttempts)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	_, err = s.Get(ctx, "v4")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPendingExpired(t *testing.T) {
	now := time.Now()
	assert.False(t, Pending{ExpiresAt: now.Add(time.Second)}.Expired(now))
	assert.True(t, Pending{ExpiresAt: now}.Expired(now))
}

func TestLogSenderWritesCode(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(zerolog.New(&buf))

	require.NoError(t, s.Send(context.Background(), "9876543210", "654321"))
	assert.Contains(t, buf.String(), `"code":"654321"`)
	assert.Contains(t, buf.String(), `"phone":"9876543210"`)
}

type fakeTwilio struct {
	params *twilioApi.CreateMessageParams
	err    error
}

func (f *fakeTwilio) CreateMessage(p *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = p
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

func TestTwilioSenderAddsCountryPrefix(t *testing.T) {
	api := &fakeTwilio{}
	s := NewTwilioSender(api, "+15005550006", "+91", zerolog.Nop())

	require.NoError(t, s.Send(context.Background(), "9876543210", "123456"))
	require.NotNil(t, api.params)
	assert.Equal(t, "+919876543210", *api.params.To)
	assert.Equal(t, "+15005550006", *api.params.From)
	assert.Contains(t, *api.params.Body, "123456")
}

func TestTwilioSenderWrapsError(t *testing.T) {
	s := NewTwilioSender(&fakeTwilio{err: errors.New("boom")}, "+1", "+91", zerolog.Nop())

	err := s.Send(context.Background(), "9876543210", "123456")
	assert.ErrorContains(t, err, "boom")
}
