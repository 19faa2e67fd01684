package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestNewCleanupJob_DefaultInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	job := NewCleanupJob(NewMockExpiredDeleter(ctrl), 0)
	assert.Equal(t, DefaultCleanupInterval, job.interval)
}

func TestCleanupJob_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixed := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		mockSetup func(m *MockExpiredDeleter)
		wantErr   bool
	}{
		{
			name: "deletes with current time",
			mockSetup: func(m *MockExpiredDeleter) {
				m.EXPECT().DeleteExpired(gomock.Any(), fixed).Return(int64(3), nil)
			},
		},
		{
			name: "store error",
			mockSetup: func(m *MockExpiredDeleter) {
				m.EXPECT().DeleteExpired(gomock.Any(), fixed).Return(int64(0), errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMockExpiredDeleter(ctrl)
			tt.mockSetup(store)

			job := NewCleanupJob(store, time.Minute)
			job.now = func() time.Time { return fixed }

			err := job.Run(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCleanupJob_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockExpiredDeleter(ctrl)
	ran := make(chan struct{}, 1)
	store.EXPECT().DeleteExpired(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, time.Time) (int64, error) {
			select {
			case ran <- struct{}{}:
			default:
			}
			return 0, nil
		}).
		MinTimes(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	job := NewCleanupJob(store, 10*time.Millisecond)
	go func() {
		job.Start(ctx)
		close(done)
	}()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not run")
	}

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not stop")
	}
}
