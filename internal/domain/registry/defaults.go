package registry

import "github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"

func size(w, h int) types.Size { return types.Size{Width: w, Height: h} }

// defaultApps is the built-in catalogue
var defaultApps = []types.AppDefinition{
	// Games
	{ID: "minesweeper", Name: "Minesweeper", Icon: "💣", Category: types.CategoryGame, DefaultSize: size(300, 380)},
	{ID: "snake", Name: "Snake", Icon: "🐍", Category: types.CategoryGame, DefaultSize: size(420, 460)},
	{ID: "breakout", Name: "Breakout", Icon: "🧱", Category: types.CategoryGame, DefaultSize: size(480, 520)},
	{ID: "solitaire", Name: "Solitaire", Icon: "🃏", Category: types.CategoryGame, DefaultSize: size(640, 480)},
	{ID: "tetris", Name: "Tetris", Icon: "🟦", Category: types.CategoryGame, DefaultSize: size(360, 560)},

	// Utilities
	{ID: "calculator", Name: "Calculator", Icon: "🧮", Category: types.CategoryUtility, DefaultSize: size(260, 360)},
	{ID: "clock", Name: "Clock", Icon: "🕰️", Category: types.CategoryUtility, DefaultSize: size(240, 240)},
	{ID: "calendar", Name: "Calendar", Icon: "📅", Category: types.CategoryUtility, DefaultSize: size(420, 380)},
	{ID: "finder", Name: "Finder", Icon: "🗂️", Category: types.CategoryUtility, DefaultSize: size(560, 400)},
	{ID: "settings", Name: "Settings", Icon: "⚙️", Category: types.CategoryUtility, DefaultSize: size(480, 360)},

	// Creative
	{ID: "macwrite", Name: "MacWrite", Icon: "📝", Category: types.CategoryCreative, DefaultSize: size(640, 480)},
	{ID: "notepad", Name: "Notepad", Icon: "🗒️", Category: types.CategoryCreative, DefaultSize: size(480, 360)},
	{ID: "paint", Name: "Paint", Icon: "🎨", Category: types.CategoryCreative, DefaultSize: size(720, 540)},
	{ID: "music-player", Name: "Music Player", Icon: "🎵", Category: types.CategoryCreative, DefaultSize: size(360, 200)},
	{ID: "notebook", Name: "Notebook", Icon: "📓", Category: types.CategoryCreative, DefaultSize: size(720, 500)},
	{ID: "pinboard", Name: "Pin Board", Icon: "📌", Category: types.CategoryCreative, DefaultSize: size(720, 500)},

	// Dev
	{ID: "terminal", Name: "Terminal", Icon: "⌨️", Category: types.CategoryDev, DefaultSize: size(640, 400)},
	{ID: "json-viewer", Name: "JSON Viewer", Icon: "🧾", Category: types.CategoryDev, DefaultSize: size(560, 480)},
	{ID: "regex-tester", Name: "Regex Tester", Icon: "🔍", Category: types.CategoryDev, DefaultSize: size(520, 380)},
	{ID: "color-picker", Name: "Color Picker", Icon: "🎯", Category: types.CategoryDev, DefaultSize: size(320, 300)},

	// Internal window types
	{ID: StickyNoteAppID, Name: "Sticky Note", Icon: "🟨", Category: types.CategorySystem, DefaultSize: size(200, 200), Hidden: true},
}
