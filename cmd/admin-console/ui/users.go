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
	"github.com/charmbracelet/lipgloss"
)

// UsersModel lists accounts with the dashboard counters above them.
type UsersModel struct {
	Client    *Client
	Table     table.Model
	Search    textinput.Model
	Searching bool
	Users     []models.User
	Stats     *dto.AdminStats
	Total     int64
	Page      int
	Status    string
	Err       error
}

func newTable(columns []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-14, 5)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func NewUsersModel(c *Client, height int) UsersModel {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "name or email"
	return UsersModel{
		Client: c,
		Table: newTable([]table.Column{
			{Title: "Name", Width: 22},
			{Title: "Email", Width: 30},
			{Title: "Role", Width: 7},
			{Title: "Active", Width: 7},
			{Title: "Joined", Width: 11},
		}, height),
		Search: search,
		Page:   1,
	}
}

type usersLoadedMsg struct {
	List  *dto.UserList
	Stats *dto.AdminStats
	Err   error
}

type userChangedMsg struct {
	Note string
	Err  error
}

func (m UsersModel) Init() tea.Cmd { return m.load() }

func (m UsersModel) load() tea.Cmd {
	page, search := m.Page, m.Search.Value()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		list, err := m.Client.Users(ctx, page, search)
		if err != nil {
			return usersLoadedMsg{Err: err}
		}
		stats, err := m.Client.Stats(ctx)
		return usersLoadedMsg{List: list, Stats: stats, Err: err}
	}
}

func (m UsersModel) selected() (models.User, bool) {
	i := m.Table.Cursor()
	if i < 0 || i >= len(m.Users) {
		return models.User{}, false
	}
	return m.Users[i], true
}

func (m UsersModel) change(note string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return userChangedMsg{Note: note, Err: fn(ctx)}
	}
}

func (m UsersModel) Update(msg tea.Msg) (UsersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		m.Err = msg.Err
		if msg.List != nil {
			m.Users = msg.List.Users
			m.Total = msg.List.Total
			m.Table.SetRows(userRows(m.Users))
		}
		if msg.Stats != nil {
			m.Stats = msg.Stats
		}
		return m, nil

	case userChangedMsg:
		m.Err = msg.Err
		if msg.Err == nil {
			m.Status = msg.Note
		}
		return m, m.load()

	case tea.KeyMsg:
		if m.Searching {
			switch msg.Type {
			case tea.KeyEnter:
				m.Searching = false
				m.Search.Blur()
				m.Table.Focus()
				m.Page = 1
				return m, m.load()
			case tea.KeyEsc:
				m.Searching = false
				m.Search.Blur()
				m.Table.Focus()
				return m, nil
			}
			var cmd tea.Cmd
			m.Search, cmd = m.Search.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "/":
			m.Searching = true
			m.Table.Blur()
			return m, m.Search.Focus()
		case "r":
			return m, m.load()
		case "n", "right":
			if int64(m.Page*20) < m.Total {
				m.Page++
				return m, m.load()
			}
		case "b", "left":
			if m.Page > 1 {
				m.Page--
				return m, m.load()
			}
		case "a":
			if u, ok := m.selected(); ok {
				active := !u.IsActive
				note := fmt.Sprintf("%s %s", u.Email, map[bool]string{true: "activated", false: "deactivated"}[active])
				return m, m.change(note, func(ctx context.Context) error { return m.Client.SetActive(ctx, u.ID, active) })
			}
		case "p":
			if u, ok := m.selected(); ok {
				role := models.RoleAdmin
				if u.Role.IsAdmin() {
					role = models.RoleUser
				}
				note := fmt.Sprintf("%s is now %s", u.Email, role)
				return m, m.change(note, func(ctx context.Context) error { return m.Client.SetRole(ctx, u.ID, role.String()) })
			}
		}
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func userRows(users []models.User) []table.Row {
	rows := make([]table.Row, 0, len(users))
	for _, u := range users {
		active := "no"
		if u.IsActive {
			active = "yes"
		}
		rows = append(rows, table.Row{u.Name, u.Email, u.Role.String(), active, u.CreatedAt.Format("2006-01-02")})
	}
	return rows
}

func statsLine(s *dto.AdminStats) string {
	if s == nil {
		return ""
	}
	cells := []string{
		fmt.Sprintf("Users %d/%d active", s.ActiveUsers, s.TotalUsers),
		fmt.Sprintf("Recipes %d", s.TotalRecipes),
		fmt.Sprintf("Ingredients %d", s.TotalIngredients),
		fmt.Sprintf("Suppliers %d", s.TotalSuppliers),
		fmt.Sprintf("Tickets %d open / %d done", s.OpenTickets, s.ResolvedTickets),
		fmt.Sprintf("Activity 24h %d", s.RecentActivity),
	}
	boxes := make([]string, len(cells))
	for i, c := range cells {
		boxes[i] = statStyle.Render(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m UsersModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Users") + "\n")
	b.WriteString(statsLine(m.Stats) + "\n")
	if m.Searching || m.Search.Value() != "" {
		b.WriteString(m.Search.View() + "\n")
	}
	b.WriteString(m.Table.View() + "\n")
	b.WriteString(blurredStyle.Render(fmt.Sprintf("page %d · %d users", m.Page, m.Total)) + "\n\n")
	b.WriteString(blurredStyle.Render("a toggle active · p toggle admin · / search · n/b page · r refresh · t tickets · q quit"))
	if m.Status != "" {
		b.WriteString("\n" + statusMessageStyle(m.Status))
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
