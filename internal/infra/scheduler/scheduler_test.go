package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDigest struct {
	daily, monthly int
	err            error
}

func (f *fakeDigest) SendDailyAgenda(context.Context, time.Time) error {
	f.daily++
	return f.err
}

func (f *fakeDigest) SendMonthlyDigest(context.Context, time.Time) error {
	f.monthly++
	return f.err
}

func TestStartRegistersBothJobs(t *testing.T) {
	l, _ := test.NewNullLogger()
	s := NewDigestScheduler(&fakeDigest{}, logrus.NewEntry(l), "0 8 * * *", "0 9 1 * *")

	require.NoError(t, s.Start())
	assert.Equal(t, 2, s.Entries())
	s.Stop()
}

func TestStartRejectsInvalidSpec(t *testing.T) {
	l, _ := test.NewNullLogger()
	s := NewDigestScheduler(&fakeDigest{}, logrus.NewEntry(l), "0 8 * * *", "every monday")

	assert.ErrorContains(t, s.Start(), "monthly digest")
}

func TestRunLogsFailures(t *testing.T) {
	l, hook := test.NewNullLogger()
	digest := &fakeDigest{err: errors.New("telegram down")}
	s := NewDigestScheduler(digest, logrus.NewEntry(l), "0 8 * * *", "0 9 1 * *")

	s.run("daily_agenda", digest.SendDailyAgenda)
	assert.Equal(t, 1, digest.daily)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "daily_agenda", hook.LastEntry().Data["job"])
}
