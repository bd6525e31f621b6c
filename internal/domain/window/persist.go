package window

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/storage"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// StorageKey is the record holding windows, focus and the z counter
const StorageKey = "desktop.windows"

// partialState is decoded when the full record does not parse, so that the
// windows which are still readable survive
type partialState struct {
	Windows        []json.RawMessage `json:"windows"`
	ActiveWindowID json.RawMessage   `json:"activeWindowId"`
	NextZIndex     json.RawMessage   `json:"nextZIndex"`
}

// Load restores the persisted record. Damaged records are recovered window
// by window; nothing here is fatal. It returns the number of windows
// restored.
func (m *Manager) Load() int {
	if m.store == nil {
		return 0
	}

	data, found, err := m.store.Get(StorageKey)
	if err != nil {
		m.logger.Warn("Failed to read window state", zap.Error(err))
		return 0
	}
	if !found {
		return 0
	}

	state, err := decodeState(data)
	if err != nil {
		m.logger.Warn("Recovered damaged window state", zap.Error(err), zap.Int("windows", len(state.Windows)))
	}
	state = normalize(state)

	m.mu.Lock()
	m.windows = state.Windows
	m.activeID = state.ActiveWindowID
	m.nextZ = state.NextZIndex
	m.mu.Unlock()

	m.logger.Info("Restored windows", zap.Int("windows", len(state.Windows)), zap.Int("next_z", state.NextZIndex))
	return len(state.Windows)
}

// decodeState parses a stored record. On failure it returns whatever could
// be salvaged together with the error describing the damage.
func decodeState(data []byte) (types.WindowState, error) {
	var state types.WindowState
	fullErr := storage.Decode(data, &state)
	if fullErr == nil {
		return state, nil
	}

	var partial partialState
	if err := storage.Decode(data, &partial); err != nil {
		return types.WindowState{}, fmt.Errorf("unreadable window record: %w", err)
	}

	salvaged := types.WindowState{}
	dropped := 0
	for _, raw := range partial.Windows {
		var w types.WindowInstance
		if err := storage.Decode(raw, &w); err != nil {
			dropped++
			continue
		}
		salvaged.Windows = append(salvaged.Windows, w)
	}
	damage := []error{fmt.Errorf("dropped %d unreadable windows: %w", dropped, fullErr)}
	if len(partial.ActiveWindowID) > 0 {
		if err := storage.Decode(partial.ActiveWindowID, &salvaged.ActiveWindowID); err != nil {
			salvaged.ActiveWindowID = nil
			damage = append(damage, fmt.Errorf("unreadable activeWindowId: %w", err))
		}
	}
	if len(partial.NextZIndex) > 0 {
		if err := storage.Decode(partial.NextZIndex, &salvaged.NextZIndex); err != nil {
			salvaged.NextZIndex = 0
			damage = append(damage, fmt.Errorf("unreadable nextZIndex: %w", err))
		}
	}
	return salvaged, errors.Join(damage...)
}

// normalize drops unusable windows and repairs focus and the z counter so
// that the active window exists and nextZIndex stays above every window
func normalize(state types.WindowState) types.WindowState {
	seen := make(map[string]struct{}, len(state.Windows))
	windows := make([]types.WindowInstance, 0, len(state.Windows))
	maxZ := 0
	for _, w := range state.Windows {
		if w.ID == "" || w.AppID == "" {
			continue
		}
		if _, dup := seen[w.ID]; dup {
			continue
		}
		seen[w.ID] = struct{}{}
		if w.Props == nil {
			w.Props = types.Props{}
		}
		windows = append(windows, w)
		maxZ = max(maxZ, w.ZIndex)
	}

	out := types.WindowState{
		Windows:    windows,
		NextZIndex: max(state.NextZIndex, maxZ+1, BaseZIndex),
	}
	if state.ActiveWindowID != nil {
		if _, ok := seen[*state.ActiveWindowID]; ok {
			out.ActiveWindowID = copyID(state.ActiveWindowID)
		} else {
			out.ActiveWindowID = topmost(windows)
		}
	}
	return out
}

// persist writes the current state. Failures are logged and counted and
// never surface to window operations.
func (m *Manager) persist() {
	if m.store == nil {
		return
	}

	m.persistMu.Lock()
	defer m.persistMu.Unlock()

	err := storage.SaveJSON(m.store, StorageKey, m.State())
	m.metrics.RecordPersist("windows", err)
	if err != nil {
		m.logger.Error("Failed to persist window state", zap.Error(err))
	}
}
