package script

// stateLuaPrelude is the "state" api_style: bots define a plain
// think(events) function and call the bound primitives directly. No
// preprocessing needed — this constant exists so both styles go
// through the same load path.
const stateLuaPrelude = ``

// ooLuaPrelude implements the "oo" api_style as a step table: bot code
// registers named steps with step(name, fn), and the prelude's think
// runs the current step once per tick, moving to the next step when it
// returns a true value and wrapping to the first after the last. Bot
// source is loaded as written: no `yield`-style code is rewritten, and
// a step's local variables do not survive from one tick to the next.
const ooLuaPrelude = `
__oo_steps = {}
__oo_index = 1

function step(name, fn)
    table.insert(__oo_steps, {name = name, fn = fn})
end

function think(events)
    if __oo_index > #__oo_steps then
        __oo_index = 1
    end
    if #__oo_steps == 0 then
        return
    end
    local current = __oo_steps[__oo_index]
    local advance = current.fn(events)
    if advance then
        __oo_index = __oo_index + 1
    end
end
`

// APIStyle selects which preload prelude, if any, is injected before a
// bot's own source.
type APIStyle int

const (
	StyleState APIStyle = iota
	StyleOO
)

func preludeFor(style APIStyle) string {
	if style == StyleOO {
		return ooLuaPrelude
	}
	return stateLuaPrelude
}

// NewWithStyle is like New but prefixes code with the chosen
// api_style's prelude.
func NewWithStyle(host Host, playerID uint64, style APIStyle, code string, maxCalls int) (*VM, error) {
	return New(host, playerID, preludeFor(style)+"\n"+code, maxCalls)
}
