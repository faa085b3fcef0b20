package domain

import "errors"

var (
	ErrSlotNotFound      = errors.New("slot not found")
	ErrNoSessionEnd      = errors.New("no session end recorded for slot")
	ErrInvalidSchedule   = errors.New("slot scheduled time is not a valid instant")
	ErrAgendaUnavailable = errors.New("agenda service unavailable")
)
