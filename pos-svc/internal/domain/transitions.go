package domain

import "slices"

type WaitlistAction string

const (
	WaitlistCall     WaitlistAction = "call"
	WaitlistSeat     WaitlistAction = "seat"
	WaitlistComplete WaitlistAction = "complete"
	WaitlistCancel   WaitlistAction = "cancel"
)

type WaitlistTransition struct {
	From   []WaitlistStatus
	To     WaitlistStatus
	Reject string
}

func (t WaitlistTransition) Allows(s WaitlistStatus) bool {
	return slices.Contains(t.From, s)
}

var waitlistTransitions = map[WaitlistAction]WaitlistTransition{
	WaitlistCall: {
		From:   []WaitlistStatus{WaitlistWaiting},
		To:     WaitlistCalled,
		Reject: "already called or seated",
	},
	WaitlistSeat: {
		From:   []WaitlistStatus{WaitlistCalled},
		To:     WaitlistSeated,
		Reject: "entry is not called",
	},
	WaitlistComplete: {
		From:   []WaitlistStatus{WaitlistSeated},
		To:     WaitlistCompleted,
		Reject: "entry is not seated",
	},
	WaitlistCancel: {
		From:   []WaitlistStatus{WaitlistWaiting, WaitlistCalled},
		To:     WaitlistCancelled,
		Reject: "entry cannot be cancelled",
	},
}

func WaitlistTransitionFor(action WaitlistAction) (WaitlistTransition, bool) {
	t, ok := waitlistTransitions[action]
	return t, ok
}

type OrderAction string

const (
	OrderSend     OrderAction = "send"
	OrderComplete OrderAction = "complete"
)

type OrderTransition struct {
	From   []OrderStatus
	To     OrderStatus
	Reject string
}

func (t OrderTransition) Allows(s OrderStatus) bool {
	return slices.Contains(t.From, s)
}

var orderTransitions = map[OrderAction]OrderTransition{
	OrderSend: {
		From:   []OrderStatus{OrderOpen},
		To:     OrderSent,
		Reject: "order is not open",
	},
	OrderComplete: {
		From:   []OrderStatus{OrderOpen, OrderSent},
		To:     OrderCompleted,
		Reject: "order is already completed",
	},
}

func OrderTransitionFor(action OrderAction) (OrderTransition, bool) {
	t, ok := orderTransitions[action]
	return t, ok
}
