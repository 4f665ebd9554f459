package domain

import (
	"fmt"
	"strings"
)

// Status enumerates order progression as reported by the backend.
type Status string

const (
	StatusCreated        Status = "CREATED"
	StatusAccepted       Status = "ACCEPTED"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
)

// Statuses lists every known status in workflow order.
var Statuses = []Status{StatusCreated, StatusAccepted, StatusOutForDelivery, StatusDelivered, StatusCancelled}

// Action is an operator command on an order.
type Action string

const (
	ActionAccept  Action = "accept"
	ActionCancel  Action = "cancel"
	ActionAssign  Action = "assign"
	ActionDeliver Action = "deliver"
)

var transitions = map[Status]map[Action]Status{
	StatusCreated:        {ActionAccept: StatusAccepted, ActionCancel: StatusCancelled},
	StatusAccepted:       {ActionAssign: StatusOutForDelivery},
	StatusOutForDelivery: {ActionDeliver: StatusDelivered},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

var actionOrder = []Action{ActionAccept, ActionCancel, ActionAssign, ActionDeliver}

// Next returns the status an action leads to, or false when the action is not
// offered from the given status.
func Next(from Status, action Action) (Status, bool) {
	to, ok := transitions[from][action]
	return to, ok
}

// ActionsFor lists the actions offered for a status, in display order.
func ActionsFor(status Status) []Action {
	var actions []Action
	for _, action := range actionOrder {
		if _, ok := transitions[status][action]; ok {
			actions = append(actions, action)
		}
	}
	return actions
}

// Terminal reports whether no action leaves the status.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// Known reports whether the status belongs to the workflow.
func (s Status) Known() bool {
	_, ok := transitions[s]
	return ok
}

// ParseStatus normalises a status string.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !status.Known() {
		return "", fmt.Errorf("unknown order status %q", raw)
	}
	return status, nil
}
