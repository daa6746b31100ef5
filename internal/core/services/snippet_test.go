package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeSnippet_ShortTextReturnedWhole(t *testing.T) {
	text := "  A short chunk about budgets.  "

	snippet := makeSnippet(text, "budgets", 200)
	assert.Equal(t, "A short chunk about budgets.", snippet)
}

func TestMakeSnippet_PicksDensestWindow(t *testing.T) {
	filler := strings.Repeat("Unrelated filler sentence goes here. ", 10)
	text := filler + "The quarterly budget review covers allocation." + filler

	snippet := makeSnippet(text, "quarterly budget allocation", 80)
	assert.Contains(t, snippet, "budget")
	assert.True(t, strings.HasPrefix(snippet, "..."))
	assert.True(t, strings.HasSuffix(snippet, "..."))
}

func TestMakeSnippet_NoMatchStartsAtHead(t *testing.T) {
	text := strings.Repeat("Nothing matching in this text at all. ", 10)

	snippet := makeSnippet(text, "zebra quantum", 50)
	assert.True(t, strings.HasPrefix(snippet, "Nothing matching"))
	assert.True(t, strings.HasSuffix(snippet, "..."))
}

func TestMakeSnippet_DefaultLength(t *testing.T) {
	text := strings.Repeat("word ", 100)

	snippet := makeSnippet(text, "word", 0)
	assert.LessOrEqual(t, len(snippet), DefaultSnippetLength+6)
}
