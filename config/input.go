package config

// ActionID represents a logical game action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveDown
	ActionMoveUp
	ActionAct
	ActionTaunt
	ActionCount // Must be last - used for array sizing
)

func (a ActionID) String() string {
	switch a {
	case ActionMoveLeft:
		return "left"
	case ActionMoveRight:
		return "right"
	case ActionMoveDown:
		return "down"
	case ActionMoveUp:
		return "up"
	case ActionAct:
		return "act"
	case ActionTaunt:
		return "taunt"
	}
	return "none"
}
