package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistrationStatusTransitions(t *testing.T) {
	assert.True(t, RegistrationPending.CanTransitionTo(RegistrationApproved))
	assert.True(t, RegistrationPending.CanTransitionTo(RegistrationDeclined))
	assert.False(t, RegistrationPending.CanTransitionTo(RegistrationPending))

	for _, decided := range []RegistrationStatus{RegistrationApproved, RegistrationDeclined} {
		assert.False(t, decided.CanTransitionTo(RegistrationPending), "%s -> PENDING", decided)
		assert.False(t, decided.CanTransitionTo(RegistrationApproved), "%s -> APPROVED", decided)
		assert.False(t, decided.CanTransitionTo(RegistrationDeclined), "%s -> DECLINED", decided)
	}
}

func TestParseRegistrationStatus(t *testing.T) {
	st, err := ParseRegistrationStatus(" approved ")
	assert.NoError(t, err)
	assert.Equal(t, RegistrationApproved, st)

	_, err = ParseRegistrationStatus("REVIEWING")
	assert.Error(t, err)
}

func TestParseLanguage(t *testing.T) {
	assert.Equal(t, LanguageEnglish, ParseLanguage("EN"))
	assert.Equal(t, LanguageSerbian, ParseLanguage("sr"))
	assert.Equal(t, LanguageSerbian, ParseLanguage(""))
	assert.Equal(t, LanguageSerbian, ParseLanguage("de"))
}
