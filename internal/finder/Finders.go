package finder

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/Mshel/micromouse/internal/maze"
)

const (
	NameLeftWall = "left-wall"
	NameLua      = "lua"
)

var ErrUnknownFinder = errors.New("unknown path finder")

// Names lists the finders New knows about.
func Names() []string {
	return []string{NameLeftWall, NameLua}
}

// New builds a path finder by name. For "lua" the script is read from
// scriptPath, or DefaultScript is used when scriptPath is empty.
// The returned close function releases the finder's resources.
func New(name, scriptPath string, logger *log.Logger) (maze.PathFinder, func(), error) {
	switch name {
	case NameLeftWall:
		return NewWallFollower(), func() {}, nil

	case NameLua:
		script := DefaultScript
		scriptName := "default"
		if scriptPath != "" {
			source, err := os.ReadFile(scriptPath)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to read lua strategy: %w", err)
			}
			script = string(source)
			scriptName = scriptPath
		}

		luaFinder, err := NewLuaFinder(scriptName, script, logger)
		if err != nil {
			return nil, nil, err
		}
		return luaFinder, luaFinder.Close, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownFinder, name)
}
