package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const requestTimeout = 10 * time.Second

type state int

const (
	stateLogin state = iota
	stateUsers
	stateTickets
)

type RootModel struct {
	State    state
	Client   *Client
	Admin    string
	Login    LoginModel
	Users    UsersModel
	Tickets  TicketsModel
	Quitting bool
	height   int
}

func NewRootModel(c *Client) RootModel {
	return RootModel{
		State:  stateLogin,
		Client: c,
		Login:  NewLoginModel(c),
		height: 30,
	}
}

func (m RootModel) Init() tea.Cmd {
	return m.Login.Init()
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		if m.State != stateLogin {
			m.Users.Table.SetHeight(max(msg.Height-14, 5))
			m.Tickets.Table.SetHeight(max(msg.Height-14, 5))
		}

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		editing := m.State == stateLogin || m.Users.Searching || m.Tickets.Replying
		if !editing {
			switch msg.String() {
			case "q":
				return m.quit()
			case "t":
				if m.State == stateUsers {
					m.State = stateTickets
					return m, m.Tickets.Init()
				}
			case "u":
				if m.State == stateTickets {
					m.State = stateUsers
					return m, m.Users.Init()
				}
			}
		}

	case loginResultMsg:
		m.Login.Busy = false
		if msg.Err != nil {
			m.Login.Err = msg.Err
			return m, nil
		}
		m.Admin = msg.Email
		m.State = stateUsers
		m.Users = NewUsersModel(m.Client, m.height)
		m.Tickets = NewTicketsModel(m.Client, m.height)
		return m, m.Users.Init()
	}

	var cmd tea.Cmd
	switch m.State {
	case stateLogin:
		m.Login, cmd = m.Login.Update(msg)
	case stateUsers:
		m.Users, cmd = m.Users.Update(msg)
	case stateTickets:
		m.Tickets, cmd = m.Tickets.Update(msg)
	}
	return m, cmd
}

func (m RootModel) quit() (tea.Model, tea.Cmd) {
	m.Quitting = true
	if m.State != stateLogin {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = m.Client.Logout(ctx)
	}
	return m, tea.Quit
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Bye!\n"
	}
	var body string
	switch m.State {
	case stateLogin:
		body = m.Login.View()
	case stateUsers:
		body = m.Users.View()
	case stateTickets:
		body = m.Tickets.View()
	}
	if m.Admin != "" {
		body += "\n\n" + blurredStyle.Render("signed in as "+m.Admin)
	}
	return docStyle.Render(body)
}
