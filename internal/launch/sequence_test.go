package launch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/axwatch/internal/mainloop"
	"github.com/mj1618/axwatch/internal/model"
	"github.com/mj1618/axwatch/internal/platform"
	"github.com/mj1618/axwatch/internal/platform/platformtest"
)

type recorder struct {
	mu     sync.Mutex
	events []model.Event
}

func (r *recorder) Emit(ev model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) ofType(t model.EventType) []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Event
	for _, ev := range r.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

var finder = model.Process{Name: "Finder", BundleID: "com.apple.finder", PID: 412}

func finderConfig() Config {
	return Config{BundleID: "com.apple.finder", Notification: "AXWindowMoved"}
}

func newSequence(t *testing.T, fake *platformtest.Fake, cfg Config) (*Sequence, *recorder, *bytes.Buffer) {
	t.Helper()
	rec := &recorder{}
	var logs bytes.Buffer
	seq := New(fake.Provider(), cfg, rec).
		WithLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	seq.now = func() time.Time { return time.Unix(1700000000, 0) }
	return seq, rec, &logs
}

func TestRun_UntrustedWarnsAndContinues(t *testing.T) {
	fake := &platformtest.Fake{Trusted: false, Apps: []model.Process{finder}}
	seq, rec, logs := newSequence(t, fake, finderConfig())

	sess := seq.Run()

	warnings := rec.ofType(model.EventWarning)
	require.Len(t, warnings, 1)
	assert.Equal(t, "needs permission!!", warnings[0].Text())
	assert.Contains(t, logs.String(), "needs accessibility permission")

	res := sess.Result()
	assert.False(t, res.Trusted)
	assert.Equal(t, OutcomeRegistered, res.Outcome, "trust failure must not stop registration")
	assert.Equal(t, 1, fake.ObserveCalls)
}

func TestRun_PromptIsForwarded(t *testing.T) {
	fake := &platformtest.Fake{Trusted: true, Apps: []model.Process{finder}}
	cfg := finderConfig()
	cfg.Prompt = true
	seq, _, _ := newSequence(t, fake, cfg)

	seq.Run()
	assert.Equal(t, 1, fake.PromptCalls)
}

func TestRun_ProcessNotFoundSkipsRegistration(t *testing.T) {
	fake := &platformtest.Fake{Trusted: true}
	seq, rec, logs := newSequence(t, fake, finderConfig())

	sess := seq.Run()

	res := sess.Result()
	assert.Equal(t, OutcomeProcessNotFound, res.Outcome)
	assert.ErrorIs(t, res.Err, platform.ErrProcessNotFound)
	assert.Nil(t, res.Process)
	assert.Zero(t, fake.WrapCalls)
	assert.Zero(t, fake.ObserveCalls)
	assert.Empty(t, rec.ofType(model.EventRegistered))
	assert.Len(t, rec.ofType(model.EventSkipped), 1)
	assert.Contains(t, logs.String(), "target application not running")

	require.NoError(t, sess.Close())
}

func TestRun_FinderLookupErrorIsProcessNotFound(t *testing.T) {
	lookupErr := errors.New("workspace unavailable")
	fake := &platformtest.Fake{Trusted: true, FindErr: lookupErr}
	seq, _, _ := newSequence(t, fake, finderConfig())

	res := seq.Run().Result()
	assert.Equal(t, OutcomeProcessNotFound, res.Outcome)
	assert.ErrorIs(t, res.Err, platform.ErrProcessNotFound)
	assert.ErrorIs(t, res.Err, lookupErr)
}

func TestRun_PicksLastMatchingProcess(t *testing.T) {
	older := finder
	older.PID = 100
	other := model.Process{Name: "Safari", BundleID: "com.apple.Safari", PID: 300}
	fake := &platformtest.Fake{Trusted: true, Apps: []model.Process{older, other, finder}}
	seq, _, _ := newSequence(t, fake, finderConfig())

	res := seq.Run().Result()
	require.NotNil(t, res.Process)
	assert.Equal(t, 412, res.Process.PID)
}

func TestRun_PIDOverridesBundleID(t *testing.T) {
	safari := model.Process{Name: "Safari", BundleID: "com.apple.Safari", PID: 300}
	fake := &platformtest.Fake{Trusted: true, Apps: []model.Process{finder, safari}}
	cfg := finderConfig()
	cfg.PID = 300
	seq, _, _ := newSequence(t, fake, cfg)

	res := seq.Run().Result()
	require.NotNil(t, res.Process)
	assert.Equal(t, "Safari", res.Process.Name)

	cfg.PID = 999
	seq, _, _ = newSequence(t, fake, cfg)
	res = seq.Run().Result()
	assert.Equal(t, OutcomeProcessNotFound, res.Outcome)
}

func TestRun_AutomationUnavailableIsRecoverable(t *testing.T) {
	fake := &platformtest.Fake{Trusted: true, Apps: []model.Process{finder}, WrapErr: errors.New("no AX element")}
	seq, rec, _ := newSequence(t, fake, finderConfig())

	var sess *Session
	require.NotPanics(t, func() { sess = seq.Run() })

	res := sess.Result()
	assert.Equal(t, OutcomeAutomationUnavailable, res.Outcome)
	assert.ErrorIs(t, res.Err, platform.ErrAutomationUnavailable)
	require.NotNil(t, res.Process, "the found process is still reported")
	assert.Equal(t, 412, res.Process.PID)
	assert.Zero(t, fake.ObserveCalls)
	assert.Empty(t, rec.ofType(model.EventRegistered))
}

func TestRun_WrapFailureFromMissingPermission(t *testing.T) {
	fake := &platformtest.Fake{
		Trusted: false,
		Apps:    []model.Process{finder},
		WrapErr: &platform.AXError{Op: "wrap", Code: -25211},
	}
	seq, _, logs := newSequence(t, fake, finderConfig())

	res := seq.Run().Result()
	assert.Equal(t, OutcomeAutomationUnavailable, res.Outcome)
	assert.ErrorIs(t, res.Err, platform.ErrAutomationUnavailable)
	assert.ErrorIs(t, res.Err, platform.ErrNotTrusted)
	assert.Contains(t, logs.String(), "accessibility permission missing")
	assert.Zero(t, fake.ObserveCalls)
}

func TestRun_ObserveFailureReleasesHandle(t *testing.T) {
	fake := &platformtest.Fake{
		Trusted:    true,
		Apps:       []model.Process{finder},
		ObserveErr: &platform.AXError{Op: "observe", Code: -25207},
	}
	seq, rec, _ := newSequence(t, fake, finderConfig())

	res := seq.Run().Result()
	assert.Equal(t, OutcomeObserveFailed, res.Outcome)
	assert.ErrorIs(t, res.Err, platform.ErrObserve)
	assert.Empty(t, rec.ofType(model.EventRegistered))

	apps := fake.Applications()
	require.Len(t, apps, 1)
	assert.True(t, apps[0].Closed())
}

func TestRun_RegistersOnceAndReportsEveryNotification(t *testing.T) {
	fake := &platformtest.Fake{Trusted: true, Apps: []model.Process{finder}}
	seq, rec, _ := newSequence(t, fake, finderConfig())

	sess := seq.Run()

	registered := rec.ofType(model.EventRegistered)
	require.Len(t, registered, 1)
	assert.Equal(t, "registered for <Application Finder (com.apple.finder) pid=412>", registered[0].Text())
	assert.Equal(t, "sub-1", registered[0].Subscription)
	assert.Empty(t, rec.ofType(model.EventWarning))

	win := model.Element{Role: "AXWindow", Title: "Documents", PID: 412}
	assert.Equal(t, 1, fake.Fire("AXWindowMoved", win))
	assert.Equal(t, 1, fake.Fire("AXWindowMoved", win))
	assert.Equal(t, 0, fake.Fire("AXWindowResized", win))

	notes := rec.ofType(model.EventNotification)
	require.Len(t, notes, 2, "no deduplication of identical notifications")
	assert.Equal(t, `<AXWindow "Documents" pid=412> received notification.`, notes[0].Text())
	assert.Equal(t, "AXWindowMoved", notes[1].Notification)
	assert.Equal(t, 2, sess.Received())

	st := sess.Status()
	assert.Equal(t, OutcomeRegistered, st.Outcome)
	assert.Equal(t, "sub-1", st.Subscription)
	assert.Equal(t, 2, st.Received)
	assert.False(t, st.Closed)
	assert.Empty(t, st.Error)
}

func TestSession_CloseReleasesSubscription(t *testing.T) {
	fake := &platformtest.Fake{Trusted: true, Apps: []model.Process{finder}}
	seq, rec, _ := newSequence(t, fake, finderConfig())

	sess := seq.Run()
	require.Equal(t, 1, fake.OpenSubscriptions())

	require.NoError(t, sess.Close())
	assert.Zero(t, fake.OpenSubscriptions())
	assert.True(t, fake.Applications()[0].Closed())
	assert.Len(t, rec.ofType(model.EventUnregistered), 1)

	// Idempotent.
	require.NoError(t, sess.Close())
	assert.Len(t, rec.ofType(model.EventUnregistered), 1)

	assert.Zero(t, fake.Fire("AXWindowMoved", model.Element{Role: "AXWindow"}))
	assert.True(t, sess.Status().Closed)
}

func TestSession_DropsNotificationsAfterClose(t *testing.T) {
	fake := &platformtest.Fake{Trusted: true, Apps: []model.Process{finder}}
	seq, rec, _ := newSequence(t, fake, finderConfig())
	sess := seq.Run()

	// A callback already queued on the run loop when Close ran.
	require.NoError(t, sess.Close())
	sess.handle("AXWindowMoved", model.Element{Role: "AXWindow"})

	assert.Empty(t, rec.ofType(model.EventNotification))
	assert.Zero(t, sess.Received())
}

func TestSchedule_RunsOnLoop(t *testing.T) {
	fake := &platformtest.Fake{Trusted: true, Apps: []model.Process{finder}}
	seq, _, _ := newSequence(t, fake, finderConfig())

	loop := mainloop.New(nil)
	sessCh := seq.Schedule(loop)
	assert.Zero(t, fake.ObserveCalls, "nothing runs before the loop does")

	ctx, cancel := context.WithCancel(context.Background())
	loop.Async(cancel)
	loop.Run(ctx)

	select {
	case sess := <-sessCh:
		assert.Equal(t, OutcomeRegistered, sess.Result().Outcome)
	default:
		t.Fatal("session not delivered")
	}
}

func TestOutcomeString(t *testing.T) {
	tests := map[Outcome]string{
		OutcomeNotRun:                "not-run",
		OutcomeRegistered:            "registered",
		OutcomeProcessNotFound:       "process-not-found",
		OutcomeAutomationUnavailable: "automation-unavailable",
		OutcomeObserveFailed:         "observe-failed",
		Outcome(42):                  "unknown",
	}
	for o, want := range tests {
		assert.Equal(t, want, o.String())
		b, err := o.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, want, string(b))
	}
}

func TestMultiSink(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	var calls int
	sink := MultiSink{a, nil, b, SinkFunc(func(model.Event) { calls++ })}
	sink.Emit(model.Event{Type: model.EventWarning})

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
	assert.Equal(t, 1, calls)
}
