package ui

import (
	"errors"
	"strconv"
	"strings"
)

const (
	CallbackPrefix     = "r:"
	MaxCallbackDataLen = 64
)

// Op is a reminder button action.
type Op string

const (
	// OpAck redisplays the reminder without buttons.
	OpAck Op = "ack"
	// OpDelete permanently removes a reminder.
	OpDelete Op = "rm"
	// OpDeleteSeries removes a periodic reminder and says so in the message.
	OpDeleteSeries Op = "rmp"
	// OpCreateCard materializes the reminder as a task-tracker card.
	OpCreateCard Op = "cc"
	// OpDismiss removes the message itself; the reminder is untouched.
	OpDismiss Op = "dm"

	OpSnoozeHour     Op = "snh"
	OpSnoozeSixHours Op = "sn6h"
	OpSnoozeDay      Op = "snd"
	OpSnoozeWeek     Op = "snw"
)

// Action is a parsed reminder callback. ReminderID is zero for OpDismiss.
type Action struct {
	Op         Op
	ReminderID uint
}

var (
	errInvalidPrefix       = errors.New("invalid callback prefix")
	errInvalidAction       = errors.New("invalid callback action")
	errInvalidValue        = errors.New("invalid callback value")
	errCallbackDataTooLong = errors.New("callback data too long")
)

func knownOp(op Op) bool {
	switch op {
	case OpAck, OpDelete, OpDeleteSeries, OpCreateCard, OpDismiss,
		OpSnoozeHour, OpSnoozeSixHours, OpSnoozeDay, OpSnoozeWeek:
		return true
	default:
		return false
	}
}

// IsSnooze reports whether an op is one of the snooze buttons.
func IsSnooze(op Op) bool {
	switch op {
	case OpSnoozeHour, OpSnoozeSixHours, OpSnoozeDay, OpSnoozeWeek:
		return true
	default:
		return false
	}
}

func BuildCallback(op Op, reminderID uint) (string, error) {
	if !knownOp(op) {
		return "", errInvalidAction
	}
	data := CallbackPrefix + string(op) + ":" + strconv.FormatUint(uint64(reminderID), 10)
	if len(data) > MaxCallbackDataLen {
		return "", errCallbackDataTooLong
	}
	return data, nil
}

func ParseCallbackData(data string) (Action, error) {
	if data == "" {
		return Action{}, errInvalidAction
	}
	if len(data) > MaxCallbackDataLen {
		return Action{}, errCallbackDataTooLong
	}
	if !strings.HasPrefix(data, CallbackPrefix) {
		return Action{}, errInvalidPrefix
	}

	parts := strings.Split(data, ":")
	if len(parts) != 3 || parts[0] != "r" {
		return Action{}, errInvalidAction
	}

	op := Op(parts[1])
	if !knownOp(op) {
		return Action{}, errInvalidAction
	}

	if !isASCIIUnsignedInt(parts[2]) {
		return Action{}, errInvalidValue
	}
	id, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return Action{}, errInvalidValue
	}

	return Action{Op: op, ReminderID: uint(id)}, nil
}

func isASCIIUnsignedInt(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}
