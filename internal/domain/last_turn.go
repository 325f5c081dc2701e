package domain

import "reflect"

// LastTurn - последняя исполненная команда и счётчик многоходовой команды.
// Хранится снаружи ядра, ядро лишь вычисляет следующее значение.
type LastTurn struct {
	Command string         `json:"command"`
	Arg     map[string]any `json:"arg,omitempty"`
	Term    int            `json:"term,omitempty"`
}

// DefaultLastTurn - состояние полководца, который ещё ничего не делал.
func DefaultLastTurn() LastTurn {
	return LastTurn{Command: CmdRest.String()}
}

// IsSameCommand - повторяется ли та же команда с теми же аргументами.
func (lt LastTurn) IsSameCommand(command string, arg map[string]any) bool {
	return lt.Command == command && sameArg(lt.Arg, arg)
}

// AddTermStack продвигает счётчик: та же команда даёт term+1 (не больше maxTerm),
// любая другая начинает с 1.
func (lt LastTurn) AddTermStack(command string, arg map[string]any, maxTerm int) LastTurn {
	if lt.IsSameCommand(command, arg) {
		return LastTurn{Command: command, Arg: arg, Term: min(lt.Term+1, maxTerm)}
	}
	return LastTurn{Command: command, Arg: arg, Term: 1}
}

// TermStack - текущее значение счётчика для команды, 0 если команда другая.
func (lt LastTurn) TermStack(command string, arg map[string]any) int {
	if lt.IsSameCommand(command, arg) {
		return lt.Term
	}
	return 0
}

func sameArg(a, b map[string]any) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}
