package scheduler

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRefresher struct {
	calls atomic.Int32
	err   error
}

func (f *fakeRefresher) RefreshPrices(ctx context.Context) (int, error) {
	f.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("no deadline")
	}
	return 6, f.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSchedulePriceRefresh(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		entries int
		wantErr bool
	}{
		{name: "disabled", spec: "", entries: 0},
		{name: "interval", spec: "@every 15m", entries: 1},
		{name: "cron expression", spec: "*/5 * * * *", entries: 1},
		{name: "invalid", spec: "every now and then", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(quietLogger())
			err := s.SchedulePriceRefresh(tt.spec, &fakeRefresher{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, s.cron.Entries(), tt.entries)
		})
	}
}

func TestScheduledJobRunsRefresh(t *testing.T) {
	s := New(quietLogger())
	r := &fakeRefresher{}
	require.NoError(t, s.SchedulePriceRefresh("@every 1h", r))

	entries := s.cron.Entries()
	require.Len(t, entries, 1)
	entries[0].WrappedJob.Run()
	assert.Equal(t, int32(1), r.calls.Load())

	r.err = errors.New("db down")
	entries[0].WrappedJob.Run()
	assert.Equal(t, int32(2), r.calls.Load())
}

func TestStartStop(t *testing.T) {
	s := New(quietLogger())
	require.NoError(t, s.SchedulePriceRefresh("@every 1h", &fakeRefresher{}))
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
	assert.NoError(t, ctx.Err())
}
