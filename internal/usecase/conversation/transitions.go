package conversation

import (
	"fmt"

	"github.com/futig/legaldoc-assistant/internal/entity"
)

type event string

const (
	// first user message after the greeting
	evFirstMessage event = "first_message"

	evTypeMatched         event = "type_matched"
	evTypeMatchedNoFields event = "type_matched_no_fields"
	evTypeUnmatched       event = "type_unmatched"

	evAnswerRejected event = "answer_rejected"
	evAnswerAccepted event = "answer_accepted"
	// last answer accepted, document goes straight to rendering
	evFormComplete event = "form_complete"
	// last answer accepted, jurisdiction research runs first
	evFormCompleteLocalize event = "form_complete_localize"

	evResearchFinished event = "research_finished"
	evRendered         event = "rendered"
	evFollowUp         event = "follow_up"
)

var transitions = map[entity.State]map[event]entity.State{
	entity.StateGreeting: {
		evFirstMessage: entity.StateDocumentSelection,
	},
	entity.StateDocumentSelection: {
		evTypeMatched:         entity.StateInformationGathering,
		evTypeMatchedNoFields: entity.StateDocumentGeneration,
		evTypeUnmatched:       entity.StateDocumentSelection,
	},
	entity.StateInformationGathering: {
		evAnswerRejected:       entity.StateInformationGathering,
		evAnswerAccepted:       entity.StateInformationGathering,
		evFormComplete:         entity.StateDocumentGeneration,
		evFormCompleteLocalize: entity.StateLocalizationResearch,
	},
	entity.StateLocalizationResearch: {
		evResearchFinished: entity.StateDocumentGeneration,
	},
	entity.StateDocumentGeneration: {
		evRendered: entity.StateCompleted,
	},
	entity.StateCompleted: {
		evFollowUp: entity.StateCompleted,
	},
}

// transition is the pure state table lookup
func transition(from entity.State, ev event) (entity.State, error) {
	next, ok := transitions[from][ev]
	if !ok {
		return from, fmt.Errorf("%w: %s on %s", entity.ErrIllegalTransition, from, ev)
	}
	return next, nil
}
