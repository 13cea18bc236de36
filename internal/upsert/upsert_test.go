package upsert

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/carpoolnu/sestmpl/internal/catalog"
	"github.com/carpoolnu/sestmpl/internal/store"
)

// --- Recording observer ---

type recorder struct {
	events []string
}

func (r *recorder) Conflict(name string) {
	r.events = append(r.events, "conflict "+name)
}

func (r *recorder) Done(o Outcome) {
	r.events = append(r.events, string(o.State)+" "+o.Name)
}

var tmplA = catalog.Template{Name: "A", Subject: "S", HTML: "<p>{{x}}</p>", Text: "T{{x}}"}

func states(r Report) []State {
	out := make([]State, len(r.Outcomes))
	for i, o := range r.Outcomes {
		out[i] = o.State
	}
	return out
}

func TestSynchronize_EmptyStoreCreates(t *testing.T) {
	mem := store.NewMemory()
	rec := &recorder{}

	report := Synchronize(context.Background(), catalog.Catalog{tmplA}, mem, WithObserver(rec))

	wantCalls := []store.Call{{Op: "create", Template: tmplA}}
	if diff := cmp.Diff(wantCalls, mem.Calls()); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"created A"}, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if report.Outcomes[0].Conflict {
		t.Error("Conflict should be false on the create path")
	}
}

func TestSynchronize_ExistingTemplateUpdates(t *testing.T) {
	mem := store.NewMemory(catalog.Template{Name: "A", Subject: "old", HTML: "<p>old</p>", Text: "old"})
	rec := &recorder{}

	report := Synchronize(context.Background(), catalog.Catalog{tmplA}, mem, WithObserver(rec))

	wantCalls := []store.Call{
		{Op: "create", Template: tmplA},
		{Op: "update", Template: tmplA},
	}
	if diff := cmp.Diff(wantCalls, mem.Calls()); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"conflict A", "updated A"}, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	got, _ := mem.Get("A")
	if diff := cmp.Diff(tmplA, got); diff != "" {
		t.Errorf("stored template not replaced (-want +got):\n%s", diff)
	}
	if !report.Outcomes[0].Conflict {
		t.Error("Conflict should be true on the update path")
	}
}

func TestSynchronize_UpdateFailure(t *testing.T) {
	mem := store.NewMemory(tmplA)
	mem.FailUpdate("A", &store.RemoteError{Op: "update", Name: "A", Code: "Throttling", Message: "Rate exceeded"})

	report := Synchronize(context.Background(), catalog.Catalog{tmplA}, mem)

	out := report.Outcomes[0]
	if out.State != StateFailed || out.Op != "update" {
		t.Fatalf("outcome = %+v, want failed update", out)
	}
	if out.Reason() != "Throttling: Rate exceeded" {
		t.Errorf("Reason() = %q", out.Reason())
	}
}

func TestSynchronize_Isolation(t *testing.T) {
	c := catalog.Catalog{
		{Name: "one", Subject: "1", Text: "1"},
		{Name: "two", Subject: "2", Text: "2"},
		{Name: "three", Subject: "3", Text: "3"},
	}
	mem := store.NewMemory()
	mem.FailCreate("two", &store.RemoteError{Op: "create", Name: "two", Message: "invalid field"})

	report := Synchronize(context.Background(), c, mem)

	want := []State{StateCreated, StateFailed, StateCreated}
	if diff := cmp.Diff(want, states(report)); diff != "" {
		t.Errorf("states mismatch (-want +got):\n%s", diff)
	}
	if report.Outcomes[1].Op != "create" {
		t.Errorf("failed Op = %q, want create", report.Outcomes[1].Op)
	}
	if diff := cmp.Diff([]string{"one", "three"}, mem.Names()); diff != "" {
		t.Errorf("stored names mismatch (-want +got):\n%s", diff)
	}
	for _, call := range mem.Calls() {
		if call.Op == "update" {
			t.Errorf("unexpected update call for %s", call.Template.Name)
		}
	}
}

func TestSynchronize_Idempotent(t *testing.T) {
	c, err := catalog.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	mem := store.NewMemory()

	first := Synchronize(context.Background(), c, mem)
	if first.Count(StateCreated) != len(c) {
		t.Errorf("first run created %d, want %d", first.Count(StateCreated), len(c))
	}

	second := Synchronize(context.Background(), c, mem)
	if second.Count(StateUpdated) != len(c) {
		t.Errorf("second run updated %d, want %d", second.Count(StateUpdated), len(c))
	}
	if second.Count(StateCreated) != 0 || second.Count(StateFailed) != 0 {
		t.Errorf("second run: created=%d failed=%d, want 0/0", second.Count(StateCreated), second.Count(StateFailed))
	}

	if len(mem.Names()) != len(c) {
		t.Errorf("store holds %d templates, want %d", len(mem.Names()), len(c))
	}
	for _, tmpl := range c {
		got, _ := mem.Get(tmpl.Name)
		if diff := cmp.Diff(tmpl, got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", tmpl.Name, diff)
		}
	}
}

func TestSynchronize_FieldFidelity(t *testing.T) {
	c, err := catalog.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	mem := store.NewMemory()
	Synchronize(context.Background(), c, mem)

	calls := mem.Calls()
	if len(calls) != len(c) {
		t.Fatalf("calls = %d, want %d", len(calls), len(c))
	}
	for i, call := range calls {
		if diff := cmp.Diff(c[i], call.Template); diff != "" {
			t.Errorf("call %d sent altered fields (-want +got):\n%s", i, diff)
		}
		if !strings.Contains(call.Template.HTML, "{{preferredName}}") || !strings.Contains(call.Template.Text, "{{OtherUser}}") {
			t.Errorf("call %d lost placeholder tokens", i)
		}
	}
}

func TestSynchronize_CanceledContextVisitsAll(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := catalog.Catalog{tmplA, {Name: "B", Subject: "S", Text: "T"}}
	mem := store.NewMemory()
	report := Synchronize(ctx, c, mem)

	if len(report.Outcomes) != 2 {
		t.Fatalf("outcomes = %d, want 2", len(report.Outcomes))
	}
	for _, o := range report.Outcomes {
		if o.State != StateFailed || !errors.Is(o.Err, context.Canceled) {
			t.Errorf("outcome %+v, want failed with context.Canceled", o)
		}
	}
	if len(mem.Calls()) != 0 {
		t.Errorf("no remote calls expected, got %d", len(mem.Calls()))
	}
}

func TestSynchronize_DryRun(t *testing.T) {
	mem := store.NewMemory()
	report := Synchronize(context.Background(), catalog.Catalog{tmplA}, mem, WithDryRun(true))

	if diff := cmp.Diff([]State{StatePlanned}, states(report)); diff != "" {
		t.Errorf("states mismatch (-want +got):\n%s", diff)
	}
	if len(mem.Calls()) != 0 {
		t.Errorf("dry run made %d remote calls", len(mem.Calls()))
	}
}

func TestOutcome_Reason(t *testing.T) {
	tests := []struct {
		name string
		out  Outcome
		want string
	}{
		{"success", Outcome{State: StateCreated}, ""},
		{"plain error", Outcome{Err: errors.New("boom")}, "boom"},
		{"remote without code", Outcome{Err: &store.RemoteError{Message: "timeout"}}, "timeout"},
		{"remote with code", Outcome{Err: &store.RemoteError{Code: "AccessDenied", Message: "denied"}}, "AccessDenied: denied"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.out.Reason(); got != tt.want {
				t.Errorf("Reason() = %q, want %q", got, tt.want)
			}
		})
	}
}
