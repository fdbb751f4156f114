package ui

import (
	"context"
	"culinary-calc/backend/app/dto"
	"culinary-calc/backend/app/models"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	statusFilters = []string{"all", "open", "in_progress", "resolved", "closed"}
	replyStatuses = []models.TicketStatus{models.TicketInProgress, models.TicketResolved, models.TicketClosed}
)

type TicketsModel struct {
	Client  *Client
	Table   table.Model
	Tickets []models.SupportTicket
	Total   int64
	Filter  int

	// reply form
	Replying    bool
	Reply       textinput.Model
	ReplyStatus int

	Status string
	Err    error
}

func NewTicketsModel(c *Client, height int) TicketsModel {
	reply := textinput.New()
	reply.Prompt = "Response: "
	reply.CharLimit = 2000
	return TicketsModel{
		Client: c,
		Table: newTable([]table.Column{
			{Title: "Subject", Width: 28},
			{Title: "From", Width: 26},
			{Title: "Priority", Width: 9},
			{Title: "Status", Width: 12},
			{Title: "Opened", Width: 11},
		}, height),
		Reply:       reply,
		ReplyStatus: 1,
	}
}

type ticketsLoadedMsg struct {
	List *dto.TicketList
	Err  error
}

type ticketRespondedMsg struct {
	Note string
	Err  error
}

func (m TicketsModel) Init() tea.Cmd { return m.load() }

func (m TicketsModel) load() tea.Cmd {
	status := statusFilters[m.Filter]
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		list, err := m.Client.Tickets(ctx, 1, status)
		return ticketsLoadedMsg{List: list, Err: err}
	}
}

func (m TicketsModel) Update(msg tea.Msg) (TicketsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ticketsLoadedMsg:
		m.Err = msg.Err
		if msg.List != nil {
			m.Tickets = msg.List.Tickets
			m.Total = msg.List.Total
			m.Table.SetRows(ticketRows(m.Tickets))
		}
		return m, nil

	case ticketRespondedMsg:
		m.Err = msg.Err
		if msg.Err == nil {
			m.Status = msg.Note
		}
		return m, m.load()

	case tea.KeyMsg:
		if m.Replying {
			return m.updateReply(msg)
		}
		switch msg.String() {
		case "f":
			m.Filter = (m.Filter + 1) % len(statusFilters)
			return m, m.load()
		case "r":
			return m, m.load()
		case "enter":
			if i := m.Table.Cursor(); i >= 0 && i < len(m.Tickets) {
				m.Replying = true
				m.Reply.SetValue("")
				m.Table.Blur()
				return m, m.Reply.Focus()
			}
		}
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m TicketsModel) updateReply(msg tea.KeyMsg) (TicketsModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.Replying = false
		m.Reply.Blur()
		m.Table.Focus()
		return m, nil
	case tea.KeyTab:
		m.ReplyStatus = (m.ReplyStatus + 1) % len(replyStatuses)
		return m, nil
	case tea.KeyEnter:
		t := m.Tickets[m.Table.Cursor()]
		text := strings.TrimSpace(m.Reply.Value())
		status := replyStatuses[m.ReplyStatus]
		m.Replying = false
		m.Reply.Blur()
		m.Table.Focus()
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			err := m.Client.Respond(ctx, t.ID, text, string(status))
			return ticketRespondedMsg{Note: fmt.Sprintf("%q marked %s", t.Subject, status), Err: err}
		}
	}
	var cmd tea.Cmd
	m.Reply, cmd = m.Reply.Update(msg)
	return m, cmd
}

func ticketRows(tickets []models.SupportTicket) []table.Row {
	rows := make([]table.Row, 0, len(tickets))
	for _, t := range tickets {
		from := t.UserID
		if t.User != nil {
			from = t.User.Email
		}
		rows = append(rows, table.Row{t.Subject, from, string(t.Priority), string(t.Status), t.CreatedAt.Format("2006-01-02")})
	}
	return rows
}

func (m TicketsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Support tickets") + "  " + blurredStyle.Render("filter: "+statusFilters[m.Filter]) + "\n\n")
	b.WriteString(m.Table.View() + "\n")
	b.WriteString(blurredStyle.Render(fmt.Sprintf("%d tickets", m.Total)) + "\n\n")
	if m.Replying {
		t := m.Tickets[m.Table.Cursor()]
		b.WriteString(focusedStyle.Render(t.Subject) + "\n" + t.Message + "\n\n")
		b.WriteString(m.Reply.View() + "\n")
		b.WriteString(blurredStyle.Render("status on send: "+string(replyStatuses[m.ReplyStatus])+" · Tab change status · Enter send · Esc cancel"))
	} else {
		b.WriteString(blurredStyle.Render("Enter respond · f filter · r refresh · u users · q quit"))
	}
	if m.Status != "" {
		b.WriteString("\n" + statusMessageStyle(m.Status))
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
