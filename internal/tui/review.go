// Package tui implements the interactive review queue for verifications
// that need a human decision.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docsentry/docsentry/internal/model"
)

// Store is the subset of the audit store the review queue needs.
type Store interface {
	UpdateReviewStatus(ctx context.Context, id string, status model.ReviewStatus) error
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FAFFF"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).PaddingLeft(2)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
)

// reviewModel drives the queue: a table of pending records with
// accept/reject keys. Decisions persist immediately.
type reviewModel struct {
	ctx      context.Context
	store    Store
	table    table.Model
	records  []model.VerificationRecord
	status   string
	err      error
	quitting bool
}

// NewReview builds the review queue over the given pending records.
func NewReview(ctx context.Context, store Store, records []model.VerificationRecord) tea.Model {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Type", Width: 14},
		{Title: "Recommendation", Width: 20},
		{Title: "Risk", Width: 6},
		{Title: "Holder", Width: 24},
	}

	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = recordRow(r)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return reviewModel{
		ctx:     ctx,
		store:   store,
		table:   t,
		records: records,
	}
}

func recordRow(r model.VerificationRecord) table.Row {
	id := r.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return table.Row{
		id,
		string(r.Kind),
		string(r.Decision.Recommendation),
		fmt.Sprintf("%.0f", r.Decision.RiskScore),
		r.Document.HolderName,
	}
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "a":
			return m.resolve(model.ReviewAccepted), nil
		case "r":
			return m.resolve(model.ReviewRejected), nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// resolve persists the decision for the selected record and drops its row.
func (m reviewModel) resolve(status model.ReviewStatus) reviewModel {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.records) {
		return m
	}
	record := m.records[idx]

	if err := m.store.UpdateReviewStatus(m.ctx, record.ID, status); err != nil {
		m.err = err
		return m
	}

	m.records = append(m.records[:idx], m.records[idx+1:]...)
	rows := make([]table.Row, len(m.records))
	for i, r := range m.records {
		rows[i] = recordRow(r)
	}
	m.table.SetRows(rows)
	m.status = fmt.Sprintf("%s marked %s", record.ID[:8], status)
	m.err = nil
	return m
}

func (m reviewModel) View() string {
	if m.quitting {
		return ""
	}
	if len(m.records) == 0 {
		return statusStyle.Render("Review queue is empty. Press q to quit.") + "\n"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Pending verifications"))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if idx := m.table.Cursor(); idx >= 0 && idx < len(m.records) {
		r := m.records[idx]
		b.WriteString(detailStyle.Render(fmt.Sprintf(
			"%s · %s\nerrors %d · warnings %d · confidence %.2f · tampering %.0f",
			r.Decision.Reason,
			r.Document.BankName,
			len(r.Validation.Errors),
			len(r.Validation.Warnings),
			r.Document.Confidence,
			r.Document.TamperingScore,
		)))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Render("error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(detailStyle.Render("a accept · r reject · ↑/↓ move · q quit"))
	b.WriteString("\n")
	return b.String()
}

// Run starts the review queue program and blocks until the user quits.
func Run(ctx context.Context, store Store, records []model.VerificationRecord) error {
	p := tea.NewProgram(NewReview(ctx, store, records), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
