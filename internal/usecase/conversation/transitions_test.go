package conversation

import (
	"testing"

	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTable_CoversEveryState(t *testing.T) {
	for _, s := range entity.States {
		assert.NotEmpty(t, transitions[s], s)
	}
}

func TestTransition(t *testing.T) {
	tests := []struct {
		from entity.State
		ev   event
		want entity.State
	}{
		{entity.StateGreeting, evFirstMessage, entity.StateDocumentSelection},
		{entity.StateDocumentSelection, evTypeMatched, entity.StateInformationGathering},
		{entity.StateDocumentSelection, evTypeMatchedNoFields, entity.StateDocumentGeneration},
		{entity.StateDocumentSelection, evTypeUnmatched, entity.StateDocumentSelection},
		{entity.StateInformationGathering, evAnswerRejected, entity.StateInformationGathering},
		{entity.StateInformationGathering, evFormComplete, entity.StateDocumentGeneration},
		{entity.StateInformationGathering, evFormCompleteLocalize, entity.StateLocalizationResearch},
		{entity.StateLocalizationResearch, evResearchFinished, entity.StateDocumentGeneration},
		{entity.StateDocumentGeneration, evRendered, entity.StateCompleted},
		{entity.StateCompleted, evFollowUp, entity.StateCompleted},
	}

	for _, tt := range tests {
		got, err := transition(tt.from, tt.ev)
		require.NoError(t, err, "%s/%s", tt.from, tt.ev)
		assert.Equal(t, tt.want, got)
	}
}

func TestTransition_Illegal(t *testing.T) {
	got, err := transition(entity.StateCompleted, evTypeMatched)
	assert.ErrorIs(t, err, entity.ErrIllegalTransition)
	assert.Equal(t, entity.StateCompleted, got)

	_, err = transition(entity.StateGreeting, evRendered)
	assert.ErrorIs(t, err, entity.ErrIllegalTransition)
}
