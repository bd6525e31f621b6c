package types

// Position is a point on the desktop canvas (not the viewport)
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size represents window dimensions
type Size struct {
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
}

// Recognised Props keys
const (
	PropNoteID    = "noteId"    // sticky note bound to a note window
	PropContentID = "contentId" // document store id opened by the window
	PropNodeID    = "nodeId"    // VFS node the window was launched from
	PropPath      = "path"      // VFS path the window was launched with
)

// Props carries instance-specific launch parameters. Keys other than the
// recognised ones are preserved untouched.
type Props map[string]string

// NoteID returns the bound note id, if any
func (p Props) NoteID() (string, bool) {
	v, ok := p[PropNoteID]
	return v, ok && v != ""
}

// ContentID returns the document content id, if any
func (p Props) ContentID() (string, bool) {
	v, ok := p[PropContentID]
	return v, ok && v != ""
}

// Clone returns an independent copy
func (p Props) Clone() Props {
	if p == nil {
		return Props{}
	}
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// WindowInstance is one open occurrence of an application
type WindowInstance struct {
	ID       string   `json:"id"`
	AppID    string   `json:"appId"`
	ZIndex   int      `json:"zIndex"`
	Position Position `json:"position"`
	Size     Size     `json:"size"`
	Props    Props    `json:"props"`
	IsNote   bool     `json:"isNote"`
}

// Clone returns a deep copy of the window
func (w WindowInstance) Clone() WindowInstance {
	w.Props = w.Props.Clone()
	return w
}

// WindowState is the persisted window-manager record
type WindowState struct {
	Windows        []WindowInstance `json:"windows"`
	ActiveWindowID *string          `json:"activeWindowId"`
	NextZIndex     int              `json:"nextZIndex"`
}

// Stats contains window manager statistics
type Stats struct {
	TotalWindows   int     `json:"totalWindows"`
	NoteWindows    int     `json:"noteWindows"`
	ActiveWindowID *string `json:"activeWindowId,omitempty"`
	NextZIndex     int     `json:"nextZIndex"`
}
