package blackjack

import (
	"fmt"
	"strings"

	"github.com/fadedpez/blackjack/internal/types"
)

// PlayerAction is one of the four moves a player can make on a hand
type PlayerAction int

const (
	ActionHit PlayerAction = iota
	ActionStand
	ActionDoubleDown
	ActionSplit
)

var actionNames = map[PlayerAction]string{
	ActionHit:        "hit",
	ActionStand:      "stand",
	ActionDoubleDown: "double_down",
	ActionSplit:      "split",
}

var actionLabels = map[PlayerAction]string{
	ActionHit:        "(h)it",
	ActionStand:      "(s)tand",
	ActionDoubleDown: "(d)ouble down",
	ActionSplit:      "s(p)lit",
}

var actionCodes = map[string]PlayerAction{
	"h": ActionHit,
	"s": ActionStand,
	"d": ActionDoubleDown,
	"p": ActionSplit,
}

// String returns the stable name used in history records
func (a PlayerAction) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Label returns the prompt label with the action's key in parentheses
func (a PlayerAction) Label() string {
	return actionLabels[a]
}

// Describe returns a human readable name for messages
func (a PlayerAction) Describe() string {
	return strings.ReplaceAll(a.String(), "_", " ")
}

// ParseAction maps a single-character input token to an action
func ParseAction(token string) (PlayerAction, error) {
	action, ok := actionCodes[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return 0, types.NewGameError(types.ErrInvalidAction, "Please enter a valid option.")
	}
	return action, nil
}

// EligibleActions computes the legal actions for a hand given what the player
// can still spend this round. Hit and Stand are always legal.
func EligibleActions(rules Rules, spendable int64, hand *Hand) []PlayerAction {
	actions := []PlayerAction{ActionHit, ActionStand}

	if hand.Wager <= spendable &&
		!hand.HasTaken(ActionDoubleDown) &&
		(rules.AllowDoubleAfterSplit || hand.Original) {
		actions = append(actions, ActionDoubleDown)
	}

	if hand.IsPair() &&
		hand.Wager <= spendable &&
		!hand.HasTaken(ActionSplit) &&
		(rules.AllowResplit || hand.Original) {
		actions = append(actions, ActionSplit)
	}

	return actions
}

func containsAction(actions []PlayerAction, action PlayerAction) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}
