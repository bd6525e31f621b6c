package window

import "github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"

// Plan is the work needed to make note windows match the note collection
type Plan struct {
	Add    []string `json:"add"`    // note ids that need a window
	Remove []string `json:"remove"` // window ids whose note is gone
}

// Empty reports whether the plan changes nothing
func (p Plan) Empty() bool {
	return len(p.Add) == 0 && len(p.Remove) == 0
}

// Reconcile compares note ids with the open windows. Afterwards exactly one
// note window exists per note: missing ones are added, windows for unknown
// notes and duplicate windows for the same note are removed. Non-note
// windows are never touched.
func Reconcile(noteIDs []string, windows []types.WindowInstance) Plan {
	wanted := make(map[string]struct{}, len(noteIDs))
	for _, nid := range noteIDs {
		wanted[nid] = struct{}{}
	}

	var plan Plan
	covered := make(map[string]struct{})
	for _, w := range windows {
		if !w.IsNote {
			continue
		}
		nid, ok := w.Props.NoteID()
		if _, want := wanted[nid]; !ok || !want {
			plan.Remove = append(plan.Remove, w.ID)
			continue
		}
		if _, dup := covered[nid]; dup {
			plan.Remove = append(plan.Remove, w.ID)
			continue
		}
		covered[nid] = struct{}{}
	}

	for _, nid := range noteIDs {
		if nid == "" {
			continue
		}
		if _, ok := covered[nid]; ok {
			continue
		}
		covered[nid] = struct{}{}
		plan.Add = append(plan.Add, nid)
	}
	return plan
}
