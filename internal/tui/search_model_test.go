package tui

import (
	"testing"

	"github.com/akyairhashvil/mvno/internal/models"
	"github.com/akyairhashvil/mvno/internal/testutil"
	"github.com/akyairhashvil/mvno/internal/util"
	"github.com/charmbracelet/bubbles/textinput"
)

func TestNewSearchManager(t *testing.T) {
	input := textinput.New()
	m := NewSearchManager(input)
	if m.Active {
		t.Fatalf("expected Active to be false")
	}
	if m.Input.Value() != "" {
		t.Fatalf("expected input to be empty")
	}
	if m.Filter() != nil {
		t.Fatalf("an empty query should not filter")
	}
}

func TestTaskFilter(t *testing.T) {
	tasks := []models.Task{
		testutil.NewTask().WithID("n1").WithName("Core network cutover").WithCategory("Network", "Core", "EPC").WithResource("ops-team").WithPercent(0).Build(),
		testutil.NewTask().WithID("n2").WithName("RAN sharing contract").WithCategory("Network", "RAN", "").WithResource("legal").WithPercent(40).Build(),
		testutil.NewTask().WithID("b1").WithName("Billing go-live").WithCategory("BSS", "Billing", "").WithResource("Ops-Team").WithPercent(100).Build(),
	}
	cases := []struct {
		query string
		want  []string
	}{
		{"status:complete", []string{"b1"}},
		{"status:done", []string{"b1"}},
		{"status:in-progress status:not-started", []string{"n1", "n2"}},
		{"status:bogus", nil},
		{"major:network", []string{"n1", "n2"}},
		{"resource:ops", []string{"n1", "b1"}},
		{"major:network resource:ops", []string{"n1"}},
		{"billing", []string{"b1"}},
		{"epc", []string{"n1"}},
		{"network cutover", []string{"n1"}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			fn := TaskFilter(util.ParseSearchQuery(tc.query))
			if fn == nil {
				t.Fatalf("expected a filter")
			}
			var got []string
			for _, task := range tasks {
				if fn(task) {
					got = append(got, task.ID)
				}
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}
