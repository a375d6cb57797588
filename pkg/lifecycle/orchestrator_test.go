package lifecycle

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"
)

// fakeParticipant records start/stop calls on a shared trace.
type fakeParticipant struct {
	tag         string
	phase       int
	autoStartup bool
	startErr    error

	mu      sync.Mutex
	running bool
	trace   *trace
}

type trace struct {
	mu    sync.Mutex
	calls []string
}

func (t *trace) add(s string) {
	t.mu.Lock()
	t.calls = append(t.calls, s)
	t.mu.Unlock()
}

func (t *trace) get() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.calls)
}

func (f *fakeParticipant) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.mu.Lock()
	f.running = true
	f.mu.Unlock()
	f.trace.add("start:" + f.tag)
	return nil
}

func (f *fakeParticipant) Stop(ctx context.Context) error {
	f.mu.Lock()
	f.running = false
	f.mu.Unlock()
	f.trace.add("stop:" + f.tag)
	return nil
}

func (f *fakeParticipant) IsRunning() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

func (f *fakeParticipant) Phase() int        { return f.phase }
func (f *fakeParticipant) AutoStartup() bool { return f.autoStartup }

// plainParticipant has no phase information.
type plainParticipant struct {
	tag   string
	trace *trace
}

func (p *plainParticipant) Start(ctx context.Context) error {
	p.trace.add("start:" + p.tag)
	return nil
}

func (p *plainParticipant) Stop(ctx context.Context) error {
	p.trace.add("stop:" + p.tag)
	return nil
}

func (p *plainParticipant) IsRunning() bool { return false }

// asyncParticipant signals stop completion from another goroutine after a
// delay, or never when delay is negative.
type asyncParticipant struct {
	fakeParticipant
	delay time.Duration
}

func (a *asyncParticipant) StopAsync(ctx context.Context, done func()) {
	a.trace.add("stopasync:" + a.tag)
	if a.delay < 0 {
		return
	}
	go func() {
		time.Sleep(a.delay)
		done()
	}()
}

type sliceSource struct {
	participants []Participant
}

func (s *sliceSource) Participants() []Participant {
	return slices.Clone(s.participants)
}

type recordingEmitter struct {
	mu          sync.Mutex
	transitions []string
}

func (r *recordingEmitter) OnStateChange(previous, current State, reason string) {
	r.mu.Lock()
	r.transitions = append(r.transitions, previous.String()+"->"+current.String())
	r.mu.Unlock()
}

func (r *recordingEmitter) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.transitions)
}

func TestRefresh_StartsInPhaseOrder(t *testing.T) {
	tr := &trace{}
	src := &sliceSource{participants: []Participant{
		&fakeParticipant{tag: "mid", phase: 0, autoStartup: true, trace: tr},
		&fakeParticipant{tag: "late", phase: 10, autoStartup: true, trace: tr},
		&fakeParticipant{tag: "early", phase: -5, autoStartup: true, trace: tr},
	}}
	o := NewOrchestrator(src, Config{}, nil, nil)

	if err := o.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	want := []string{"start:early", "start:mid", "start:late"}
	if got := tr.get(); !slices.Equal(got, want) {
		t.Errorf("start order = %v, want %v", got, want)
	}
	if o.State() != StateRunning {
		t.Errorf("State() = %v, want Running", o.State())
	}
}

// orderedParticipant additionally exposes an order capability.
type orderedParticipant struct {
	fakeParticipant
	rank int
}

func (o *orderedParticipant) Order() int { return o.rank }

func TestRefresh_EqualPhaseKeepsSourceOrder(t *testing.T) {
	// The source hands participants over already sorted by effective
	// order. A capability-ordered participant at the same phase must not
	// jump ahead of one the source placed before it.
	tr := &trace{}
	src := &sliceSource{participants: []Participant{
		&fakeParticipant{tag: "first", phase: 0, autoStartup: true, trace: tr},
		&orderedParticipant{
			fakeParticipant: fakeParticipant{tag: "second", phase: 0, autoStartup: true, trace: tr},
			rank:            5,
		},
	}}
	o := NewOrchestrator(src, Config{}, nil, nil)

	if err := o.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	want := []string{"start:first", "start:second"}
	if got := tr.get(); !slices.Equal(got, want) {
		t.Errorf("start order = %v, want %v", got, want)
	}
}

func TestRefresh_SkipsNonAutoStartup(t *testing.T) {
	tr := &trace{}
	src := &sliceSource{participants: []Participant{
		&fakeParticipant{tag: "auto", phase: 0, autoStartup: true, trace: tr},
		&fakeParticipant{tag: "manual", phase: 0, autoStartup: false, trace: tr},
	}}
	o := NewOrchestrator(src, Config{}, nil, nil)

	if err := o.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	want := []string{"start:auto"}
	if got := tr.get(); !slices.Equal(got, want) {
		t.Errorf("start calls = %v, want %v", got, want)
	}
}

func TestRefresh_WhileRunning(t *testing.T) {
	o := NewOrchestrator(&sliceSource{}, Config{}, nil, nil)
	if err := o.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if err := o.Refresh(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Refresh() error = %v, want ErrAlreadyRunning", err)
	}
}

func TestRefresh_StartFailureUnwinds(t *testing.T) {
	tr := &trace{}
	boom := errors.New("boom")
	src := &sliceSource{participants: []Participant{
		&fakeParticipant{tag: "first", phase: 0, autoStartup: true, trace: tr},
		&fakeParticipant{tag: "second", phase: 1, autoStartup: true, trace: tr},
		&fakeParticipant{tag: "broken", phase: 2, autoStartup: true, startErr: boom, trace: tr},
	}}
	o := NewOrchestrator(src, Config{}, nil, nil)

	if err := o.Refresh(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Refresh() error = %v, want %v", err, boom)
	}

	want := []string{"start:first", "start:second", "stop:second", "stop:first"}
	if got := tr.get(); !slices.Equal(got, want) {
		t.Errorf("trace = %v, want %v", got, want)
	}
	if o.State() != StateIdle {
		t.Errorf("State() = %v, want Idle after failed refresh", o.State())
	}
}

func TestClose_BeforeRefreshIsNoop(t *testing.T) {
	o := NewOrchestrator(&sliceSource{}, Config{}, nil, nil)
	if err := o.Close(context.Background()); err != nil {
		t.Errorf("Close() before Refresh error = %v, want nil", err)
	}
	if o.State() != StateIdle {
		t.Errorf("State() = %v, want Idle", o.State())
	}
}

func TestClose_ExactReverseOrder(t *testing.T) {
	tr := &trace{}
	src := &sliceSource{participants: []Participant{
		&fakeParticipant{tag: "p10", phase: 10, autoStartup: true, trace: tr},
		&fakeParticipant{tag: "p-5", phase: -5, autoStartup: true, trace: tr},
		&fakeParticipant{tag: "p0", phase: 0, autoStartup: true, trace: tr},
		&plainParticipant{tag: "plain", trace: tr},
	}}
	o := NewOrchestrator(src, Config{}, nil, nil)

	if err := o.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if err := o.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want := []string{
		"start:p-5", "start:p0", "start:p10",
		"stop:plain", "stop:p10", "stop:p0", "stop:p-5",
	}
	if got := tr.get(); !slices.Equal(got, want) {
		t.Errorf("trace = %v, want %v", got, want)
	}
	if o.State() != StateIdle {
		t.Errorf("State() = %v, want Idle", o.State())
	}
}

func TestClose_StopsNonAutoStartupToo(t *testing.T) {
	tr := &trace{}
	src := &sliceSource{participants: []Participant{
		&fakeParticipant{tag: "manual", phase: 0, autoStartup: false, trace: tr},
	}}
	o := NewOrchestrator(src, Config{}, nil, nil)

	if err := o.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if err := o.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want := []string{"stop:manual"}
	if got := tr.get(); !slices.Equal(got, want) {
		t.Errorf("trace = %v, want %v", got, want)
	}
}

func TestClose_AwaitsAsyncCompletion(t *testing.T) {
	tr := &trace{}
	async := &asyncParticipant{
		fakeParticipant: fakeParticipant{tag: "async", phase: 0, autoStartup: true, trace: tr},
		delay:           20 * time.Millisecond,
	}
	early := &fakeParticipant{tag: "early", phase: -1, autoStartup: true, trace: tr}
	src := &sliceSource{participants: []Participant{async, early}}
	o := NewOrchestrator(src, Config{}, nil, nil)

	if err := o.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if err := o.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want := []string{"start:early", "start:async", "stopasync:async", "stop:early"}
	if got := tr.get(); !slices.Equal(got, want) {
		t.Errorf("trace = %v, want %v", got, want)
	}
}

func TestClose_StopTimeout(t *testing.T) {
	tr := &trace{}
	stuck := &asyncParticipant{
		fakeParticipant: fakeParticipant{tag: "stuck", phase: 1, autoStartup: true, trace: tr},
		delay:           -1,
	}
	early := &fakeParticipant{tag: "early", phase: 0, autoStartup: true, trace: tr}
	src := &sliceSource{participants: []Participant{stuck, early}}
	o := NewOrchestrator(src, Config{StopTimeout: 10 * time.Millisecond}, nil, nil)

	if err := o.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	err := o.Close(context.Background())
	if !errors.Is(err, ErrStopTimeout) {
		t.Fatalf("Close() error = %v, want ErrStopTimeout", err)
	}

	// The stalled participant is skipped, not the ones before it.
	want := []string{"start:early", "start:stuck", "stopasync:stuck", "stop:early"}
	if got := tr.get(); !slices.Equal(got, want) {
		t.Errorf("trace = %v, want %v", got, want)
	}
	if o.State() != StateIdle {
		t.Errorf("State() = %v, want Idle", o.State())
	}
}

func TestOrchestrator_Reentrant(t *testing.T) {
	tr := &trace{}
	src := &sliceSource{participants: []Participant{
		&fakeParticipant{tag: "p", phase: 0, autoStartup: true, trace: tr},
	}}
	o := NewOrchestrator(src, Config{}, nil, nil)

	for i := 0; i < 2; i++ {
		if err := o.Refresh(context.Background()); err != nil {
			t.Fatalf("Refresh() #%d error = %v", i+1, err)
		}
		if err := o.Close(context.Background()); err != nil {
			t.Fatalf("Close() #%d error = %v", i+1, err)
		}
	}

	want := []string{"start:p", "stop:p", "start:p", "stop:p"}
	if got := tr.get(); !slices.Equal(got, want) {
		t.Errorf("trace = %v, want %v", got, want)
	}
}

func TestStateTransitions(t *testing.T) {
	emitter := &recordingEmitter{}
	o := NewOrchestrator(&sliceSource{}, Config{}, nil, emitter)

	if err := o.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if err := o.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want := []string{
		"Idle->Starting", "Starting->Running",
		"Running->Stopping", "Stopping->Idle",
	}
	if got := emitter.get(); !slices.Equal(got, want) {
		t.Errorf("transitions = %v, want %v", got, want)
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "Idle"},
		{StateStarting, "Starting"},
		{StateRunning, "Running"},
		{StateStopping, "Stopping"},
		{State(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %v, want %v", tt.state, got, tt.want)
		}
	}
}
