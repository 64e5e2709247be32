package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/phh"
)

func sampleHand() *phh.HandHistory {
	return &phh.HandHistory{
		Variant:           "NT",
		Table:             "test",
		HandID:            "hand-1",
		Players:           []string{"alice", "bob"},
		StartingStacks:    []int{100, 100},
		BlindsOrStraddles: []int{1, 2},
		Antes:             []int{0, 0},
		MinBet:            2,
		Actions: []string{
			"d dh p1 AsKs",
			"d dh p2 JhJd",
			"p1 cbr 6",
			"p2 cc",
			"d db JsJc4h",
			"p1 cc",
			"p2 cbr 10",
			"p1 f",
		},
		Winnings: []int{0, 22},
	}
}

func TestRenderHand(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, renderHand(&out, sampleHand()))

	text := out.String()
	assert.Contains(t, text, "Hand hand-1")
	assert.Contains(t, text, "Seat 1: alice ($100)")
	assert.Contains(t, text, "bob posts blind $2")
	assert.Contains(t, text, "Dealt to alice [A♠ K♠]")
	assert.Contains(t, text, "alice bets or raises to $6")
	assert.Contains(t, text, "*** FLOP *** [J♠ J♣ 4♥]")
	assert.Contains(t, text, "alice folds")
	assert.Contains(t, text, "bob wins $22")
}

func TestRenderHandErrors(t *testing.T) {
	t.Parallel()

	for _, action := range []string{"p1", "d dh p1", "q1 cc", "p1 dance"} {
		hand := sampleHand()
		hand.Actions = append(hand.Actions, action)
		var out bytes.Buffer
		assert.Error(t, renderHand(&out, hand), action)
	}
}

func TestHistoryCommand(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.phhs")
	first, second := sampleHand(), sampleHand()
	second.HandID = "hand-2"
	require.NoError(t, phh.WriteFile(path, []*phh.HandHistory{first, second}))

	g, out := testGlobals(t)
	require.NoError(t, (&HistoryCmd{File: path, Limit: 1}).Run(g))
	assert.Contains(t, out.String(), "Hand hand-1")
	assert.NotContains(t, out.String(), "Hand hand-2")

	out.Reset()
	require.NoError(t, (&HistoryCmd{File: path}).Run(g))
	assert.Contains(t, out.String(), "Hand hand-2")

	assert.Error(t, (&HistoryCmd{File: filepath.Join(t.TempDir(), "none.phh")}).Run(g))
}
