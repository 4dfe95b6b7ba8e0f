package checkout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIllegalTransition = errors.New("illegal checkout transition")
	ErrUnknownFlow       = errors.New("unknown checkout flow")
)

type Step string

const (
	StepCart     Step = "cart"
	StepShipping Step = "shipping"
	StepPayment  Step = "payment"
	StepReview   Step = "review"
)

type Action string

const (
	ActionProceed        Action = "proceed"
	ActionSubmitShipping Action = "submit_shipping"
	ActionReview         Action = "review"
	ActionPlaceOrder     Action = "place_order"
	ActionBack           Action = "back"
)

// Flow selects the checkout variant. ThreeStep skips the shipping step.
type Flow int

const (
	FourStep Flow = iota
	ThreeStep
)

func ParseFlow(s string) (Flow, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "four_step":
		return FourStep, nil
	case "three_step":
		return ThreeStep, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFlow, s)
	}
}

func (f Flow) String() string {
	if f == ThreeStep {
		return "three_step"
	}
	return "four_step"
}

// Steps lists the steps of the flow in order, for progress display.
func (f Flow) Steps() []Step {
	if f == ThreeStep {
		return []Step{StepCart, StepPayment, StepReview}
	}
	return []Step{StepCart, StepShipping, StepPayment, StepReview}
}

// Next returns the step reached by applying a in from. Any pair not listed
// is rejected with ErrIllegalTransition.
func (f Flow) Next(from Step, a Action) (Step, error) {
	switch from {
	case StepCart:
		if a == ActionProceed {
			if f == ThreeStep {
				return StepPayment, nil
			}
			return StepShipping, nil
		}
	case StepShipping:
		if f == ThreeStep {
			break
		}
		switch a {
		case ActionSubmitShipping:
			return StepPayment, nil
		case ActionBack:
			return StepCart, nil
		}
	case StepPayment:
		switch a {
		case ActionReview:
			return StepReview, nil
		case ActionBack:
			if f == ThreeStep {
				return StepCart, nil
			}
			return StepShipping, nil
		}
	case StepReview:
		switch a {
		case ActionPlaceOrder:
			return StepCart, nil
		case ActionBack:
			return StepPayment, nil
		}
	}
	return from, fmt.Errorf("%w: %s from %s", ErrIllegalTransition, a, from)
}
