package window

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

func noteWindow(windowID, noteID string) types.WindowInstance {
	return types.WindowInstance{ID: windowID, AppID: "sticky-note", IsNote: true, Props: types.Props{types.PropNoteID: noteID}}
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name    string
		notes   []string
		windows []types.WindowInstance
		want    Plan
	}{
		{
			name: "empty",
			want: Plan{},
		},
		{
			name:  "adds missing notes in order",
			notes: []string{"b", "a"},
			want:  Plan{Add: []string{"b", "a"}},
		},
		{
			name:    "removes windows for vanished notes",
			notes:   []string{"a"},
			windows: []types.WindowInstance{noteWindow("w1", "a"), noteWindow("w2", "gone")},
			want:    Plan{Remove: []string{"w2"}},
		},
		{
			name:    "removes duplicate windows",
			notes:   []string{"a"},
			windows: []types.WindowInstance{noteWindow("w1", "a"), noteWindow("w2", "a")},
			want:    Plan{Remove: []string{"w2"}},
		},
		{
			name:    "removes note windows without a note id",
			windows: []types.WindowInstance{{ID: "w1", IsNote: true}},
			want:    Plan{Remove: []string{"w1"}},
		},
		{
			name:    "ignores ordinary windows",
			notes:   []string{"a"},
			windows: []types.WindowInstance{{ID: "w1", AppID: "calculator", Props: types.Props{types.PropNoteID: "a"}}},
			want:    Plan{Add: []string{"a"}},
		},
		{
			name:  "deduplicates note ids",
			notes: []string{"a", "a", ""},
			want:  Plan{Add: []string{"a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reconcile(tt.notes, tt.windows))
		})
	}
}

func TestReconcileFixedPoint(t *testing.T) {
	windows := []types.WindowInstance{noteWindow("w1", "a"), noteWindow("w2", "x"), {ID: "w3", AppID: "paint"}}
	notes := []string{"a", "b"}

	plan := Reconcile(notes, windows)
	assert.Equal(t, []string{"w2"}, plan.Remove)
	assert.Equal(t, []string{"b"}, plan.Add)

	next := []types.WindowInstance{windows[0], windows[2], noteWindow("w4", "b")}
	assert.True(t, Reconcile(notes, next).Empty())
}
