package finder

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/Mshel/micromouse/internal/maze"
)

const (
	nextMovementFunc = "next_movement"
	cellInfoFunc     = "cell_info"
)

var ErrMissingNextMovement = errors.New("lua script does not define " + nextMovementFunc)

// DefaultScript keeps the right hand on the wall, the mirror image of WallFollower.
const DefaultScript = `
local turned = false
local left_start = false

local function at_center(x, y, size)
	local half = math.floor(size / 2)
	if size % 2 == 1 then
		return x == half and y == half
	end
	return (x == half or x == half - 1) and (y == half or y == half - 1)
end

function next_movement(x, y, maze)
	if at_center(x, y, maze.size()) then
		return "finish"
	end

	if x == 0 and y == 0 then
		if left_start then
			return "finish"
		end
	else
		left_start = true
	end

	if turned and not maze.wall_in_front() then
		turned = false
		return "forward"
	end
	turned = false

	if not maze.wall_on_right() then
		turned = true
		return "cw"
	end
	if not maze.wall_in_front() then
		return "forward"
	end
	return "ccw"
end
`

// LuaFinder runs a path finding strategy written in Lua. The script must
// define next_movement(x, y, maze) returning a movement name ("forward",
// "backward", "cw", "ccw", "around", "wait" or "finish"). It may define
// cell_info(x, y, max_len) returning a string to draw in a cell.
//
// The maze argument is a table of sensor functions: wall_in_front(),
// wall_on_left(), wall_on_right(), heading() and size().
//
// Any script error ends the run.
type LuaFinder struct {
	Name string

	state     *lua.LState
	mazeTable *lua.LTable
	view      maze.MazeView
	logger    *log.Logger
	failed    bool
}

func NewLuaFinder(name, script string, logger *log.Logger) (*LuaFinder, error) {
	if logger == nil {
		logger = log.Default()
	}

	luaState := lua.NewState()
	if err := luaState.DoString(script); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("could not load lua strategy %s: %w", name, err)
	}

	if luaState.GetGlobal(nextMovementFunc).Type() != lua.LTFunction {
		luaState.Close()
		return nil, fmt.Errorf("%w: %s", ErrMissingNextMovement, name)
	}

	f := &LuaFinder{
		Name:   name,
		state:  luaState,
		logger: logger.With("strategy", name),
	}
	f.mazeTable = f.newMazeTable()
	return f, nil
}

func (f *LuaFinder) newMazeTable() *lua.LTable {
	tbl := f.state.NewTable()
	sensor := func(read func(maze.MazeView) lua.LValue) *lua.LFunction {
		return f.state.NewFunction(func(L *lua.LState) int {
			if f.view == nil {
				L.Push(lua.LNil)
				return 1
			}
			L.Push(read(f.view))
			return 1
		})
	}

	f.state.SetField(tbl, "wall_in_front", sensor(func(v maze.MazeView) lua.LValue { return lua.LBool(v.WallInFront()) }))
	f.state.SetField(tbl, "wall_on_left", sensor(func(v maze.MazeView) lua.LValue { return lua.LBool(v.WallOnLeft()) }))
	f.state.SetField(tbl, "wall_on_right", sensor(func(v maze.MazeView) lua.LValue { return lua.LBool(v.WallOnRight()) }))
	f.state.SetField(tbl, "heading", sensor(func(v maze.MazeView) lua.LValue { return lua.LString(v.Heading().String()) }))
	f.state.SetField(tbl, "size", sensor(func(v maze.MazeView) lua.LValue { return lua.LNumber(v.Size()) }))
	return tbl
}

func (f *LuaFinder) NextMovement(x, y int, view maze.MazeView) maze.Movement {
	if f.failed {
		return maze.Finish
	}

	f.view = view
	defer func() { f.view = nil }()

	err := f.state.CallByParam(lua.P{
		Fn:      f.state.GetGlobal(nextMovementFunc),
		NRet:    1,
		Protect: true,
	}, lua.LNumber(x), lua.LNumber(y), f.mazeTable)
	if err != nil {
		f.failed = true
		f.logger.Error("lua strategy failed", "x", x, "y", y, "error", err)
		return maze.Finish
	}

	ret := f.state.Get(-1)
	f.state.Pop(1)

	if ret.Type() != lua.LTString {
		f.failed = true
		f.logger.Error("lua strategy returned a non-string movement", "type", ret.Type().String())
		return maze.Finish
	}

	movement, err := maze.ParseMovement(lua.LVAsString(ret))
	if err != nil {
		f.failed = true
		f.logger.Error("lua strategy returned an unknown movement", "error", err)
		return maze.Finish
	}
	return movement
}

func (f *LuaFinder) Info(x, y, maxLen int) string {
	fn := f.state.GetGlobal(cellInfoFunc)
	if fn.Type() != lua.LTFunction {
		return ""
	}

	err := f.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(x), lua.LNumber(y), lua.LNumber(maxLen))
	if err != nil {
		f.logger.Debug("lua cell_info failed", "x", x, "y", y, "error", err)
		return ""
	}

	ret := f.state.Get(-1)
	f.state.Pop(1)
	if ret == lua.LNil {
		return ""
	}
	return lua.LVAsString(ret)
}

func (f *LuaFinder) Close() {
	f.state.Close()
}
