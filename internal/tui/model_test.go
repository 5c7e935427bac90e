package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexai/internal/domain"
)

type stubAnswerer struct {
	lastQuery string
}

func (s *stubAnswerer) Answer(query string) *domain.AnswerRecord {
	s.lastQuery = query
	return &domain.AnswerRecord{
		Markdown: "**Summary**\n\nTheft is an offence.",
		Metadata: domain.AnswerMetadata{TLDR: "Theft is an offence."},
	}
}

func TestUpdate_EnterSubmitsTrimmedQuery(t *testing.T) {
	svc := &stubAnswerer{}
	m := New(svc, "corpus summary")
	m.input.SetValue("  what is theft  ")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, ok := updated.(Model)
	require.True(t, ok)

	assert.Equal(t, "what is theft", svc.lastQuery)
	assert.NotNil(t, model.record)
	assert.Contains(t, model.status, "what is theft")
}

func TestUpdate_EnterOnEmptyInputDoesNothing(t *testing.T) {
	svc := &stubAnswerer{}
	m := New(svc, "")
	m.input.SetValue("   ")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, ok := updated.(Model)
	require.True(t, ok)

	assert.Empty(t, svc.lastQuery)
	assert.Nil(t, model.record)
}

func TestUpdate_CtrlCQuits(t *testing.T) {
	m := New(&stubAnswerer{}, "")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRenderAnswer_IncludesTLDRAndMarkdown(t *testing.T) {
	svc := &stubAnswerer{}
	m := New(svc, "")
	m.record = svc.Answer("theft")

	out := m.renderAnswer()
	assert.Contains(t, out, "TL;DR:")
	assert.Contains(t, out, "Theft is an offence.")
}

func TestRenderAnswer_NoRecord(t *testing.T) {
	m := New(&stubAnswerer{}, "")
	assert.Equal(t, "No answer yet.", m.renderAnswer())
}
