package main

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"verdant/internal/api"
	"verdant/internal/chat"
	"verdant/internal/realtime"
	"verdant/internal/session"
	"verdant/internal/timefmt"
)

type screen int

const (
	screenAuth screen = iota
	screenChat
)

type paneFocus int

const (
	focusSearch paneFocus = iota
	focusSidebar
	focusCompose
)

const sidebarWidth = 36

// authenticate form field indices
const (
	loginEmail = iota
	loginPassword
	loginFieldCount
)

const (
	regName = iota
	regEmail
	regProfilePic
	regPassword
	regConfirm
	regFieldCount
)

type listenerHandle struct {
	event string
	id    string
}

type bootstrapMsg struct {
	creds api.Credentials
	err   error
}

type authResultMsg struct {
	creds api.Credentials
	err   error
}

type refreshTickMsg struct{}

type refreshResultMsg struct {
	err error
}

type connectResultMsg struct {
	ch  *realtime.Channel
	err error
}

type channelDownMsg struct{}

type activeUsersMsg []string

type incomingMsg api.Message

type peerDisconnectMsg realtime.Disconnect

type conversationsMsg struct {
	gen    uint64
	convos []api.Conversation
	err    error
}

type threadMsg struct {
	gen  uint64
	msgs []api.Message
	err  error
}

type searchTickMsg struct {
	seq int
}

type searchResultMsg struct {
	users []api.User
	err   error
}

type sentMsg struct {
	msg api.Message
	err error
}

type loggedOutMsg struct{}

type model struct {
	client  *api.Client
	sess    *session.Store
	tlsConf *tls.Config

	screen screen

	registerMode bool
	authInputs   []textinput.Model
	authFocus    int
	formErrors   map[string]string
	authBusy     bool

	list        *chat.List
	thread      *chat.Thread
	activeUsers []string
	channel     *realtime.Channel
	events      chan tea.Msg
	handles     []listenerHandle
	search      textinput.Model
	compose     textinput.Model
	focus       paneFocus
	cursor      int
	status      string

	width  int
	height int
}

func newModel(client *api.Client, sess *session.Store, tlsConf *tls.Config) model {
	m := model{
		client:     client,
		sess:       sess,
		tlsConf:    tlsConf,
		screen:     screenAuth,
		list:       chat.NewList(),
		thread:     chat.NewThread(),
		formErrors: map[string]string{},
	}
	m.authInputs = loginInputs()

	m.search = textinput.New()
	m.search.Placeholder = "Search"
	m.search.CharLimit = 64

	m.compose = textinput.New()
	m.compose.Placeholder = "Type your message here"
	m.compose.CharLimit = 2048

	return m
}

func loginInputs() []textinput.Model {
	inputs := make([]textinput.Model, loginFieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 128
	}
	inputs[loginEmail].Placeholder = "Your Email"
	inputs[loginPassword].Placeholder = "Your Password"
	inputs[loginPassword].EchoMode = textinput.EchoPassword
	inputs[loginEmail].Focus()
	return inputs
}

func registerInputs() []textinput.Model {
	inputs := make([]textinput.Model, regFieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 128
	}
	inputs[regName].Placeholder = "Your Name"
	inputs[regEmail].Placeholder = "Your Email"
	inputs[regProfilePic].Placeholder = "Profile Picture URL (optional)"
	inputs[regPassword].Placeholder = "Your Password"
	inputs[regPassword].EchoMode = textinput.EchoPassword
	inputs[regConfirm].Placeholder = "Confirm Password"
	inputs[regConfirm].EchoMode = textinput.EchoPassword
	inputs[regName].Focus()
	return inputs
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.bootstrapCmd())
}

// --- commands ---

func (m model) bootstrapCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		creds, err := client.RefreshToken(context.Background())
		return bootstrapMsg{creds: creds, err: err}
	}
}

func (m model) loginCmd(email string, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		creds, err := client.Login(context.Background(), email, password)
		return authResultMsg{creds: creds, err: err}
	}
}

func (m model) registerCmd(name string, email string, profilePic string, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		creds, err := client.Register(context.Background(), name, email, profilePic, password)
		return authResultMsg{creds: creds, err: err}
	}
}

func (m model) refreshCmd() tea.Cmd {
	sess, client := m.sess, m.client
	return func() tea.Msg {
		return refreshResultMsg{err: sess.Refresh(context.Background(), client)}
	}
}

func (m model) logoutCmd() tea.Cmd {
	sess, client := m.sess, m.client
	return func() tea.Msg {
		sess.Logout(context.Background(), client)
		return loggedOutMsg{}
	}
}

func (m model) connectCmd(userID string) tea.Cmd {
	client, tlsConf := m.client, m.tlsConf
	return func() tea.Msg {
		ch, err := realtime.Dial(context.Background(), client.WebsocketURL(), userID, tlsConf)
		return connectResultMsg{ch: ch, err: err}
	}
}

func (m model) fetchConversationsCmd(gen uint64) tea.Cmd {
	client, token := m.client, m.sess.Token()
	return func() tea.Msg {
		convos, err := client.Conversations(context.Background(), token)
		return conversationsMsg{gen: gen, convos: convos, err: err}
	}
}

func (m model) fetchThreadCmd(gen uint64, conversationID string) tea.Cmd {
	client, token := m.client, m.sess.Token()
	return func() tea.Msg {
		msgs, err := client.Messages(context.Background(), token, conversationID)
		return threadMsg{gen: gen, msgs: msgs, err: err}
	}
}

func (m model) searchCmd(query string) tea.Cmd {
	client, token := m.client, m.sess.Token()
	return func() tea.Msg {
		users, err := client.SearchUsers(context.Background(), token, query)
		return searchResultMsg{users: users, err: err}
	}
}

func (m model) sendCmd(content string, receiverID string) tea.Cmd {
	client, token := m.client, m.sess.Token()
	return func() tea.Msg {
		msg, err := client.SendMessage(context.Background(), token, content, receiverID)
		return sentMsg{msg: msg, err: err}
	}
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(session.RefreshInterval, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

func scheduleSearch(seq int) tea.Cmd {
	return tea.Tick(chat.DebounceDelay, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	})
}

func waitEvent(ev <-chan tea.Msg, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-ev:
			return msg
		case <-done:
			return channelDownMsg{}
		}
	}
}

// --- realtime wiring ---

func (m *model) attachListeners() {
	ev := m.events
	ch := m.channel
	m.handles = []listenerHandle{
		{realtime.EventActiveUsers, ch.On(realtime.EventActiveUsers, func(data json.RawMessage) {
			var ids []string
			if err := json.Unmarshal(data, &ids); err != nil {
				return
			}
			ev <- activeUsersMsg(ids)
		})},
		{realtime.EventMessage, ch.On(realtime.EventMessage, func(data json.RawMessage) {
			var msg api.Message
			if err := json.Unmarshal(data, &msg); err != nil {
				return
			}
			ev <- incomingMsg(msg)
		})},
		{realtime.EventUserDisconnected, ch.On(realtime.EventUserDisconnected, func(data json.RawMessage) {
			var d realtime.Disconnect
			if err := json.Unmarshal(data, &d); err != nil {
				return
			}
			ev <- peerDisconnectMsg(d)
		})},
	}
}

func (m *model) teardownChannel() {
	if m.channel == nil {
		return
	}
	for _, h := range m.handles {
		m.channel.Off(h.event, h.id)
	}
	m.handles = nil
	_ = m.channel.Close()
	m.channel = nil
}

func (m *model) enterChat(creds api.Credentials) tea.Cmd {
	m.sess.Login(creds.AccessToken, creds.User)
	m.screen = screenChat
	m.list = chat.NewList()
	m.thread = chat.NewThread()
	m.activeUsers = nil
	m.cursor = 0
	m.status = ""
	m.focus = focusSearch
	m.search.SetValue("")
	m.search.Focus()
	m.compose.SetValue("")
	m.compose.Blur()
	gen := m.list.BeginFetch()
	return tea.Batch(
		m.connectCmd(creds.User.ID),
		m.fetchConversationsCmd(gen),
		scheduleRefresh(),
	)
}

func (m *model) leaveChat() {
	m.teardownChannel()
	m.screen = screenAuth
	m.registerMode = false
	m.authInputs = loginInputs()
	m.authFocus = 0
	m.formErrors = map[string]string{}
	m.authBusy = false
	m.thread.Clear()
}

// --- update ---

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case bootstrapMsg:
		if msg.err != nil {
			return m, nil
		}
		cmd := m.enterChat(msg.creds)
		return m, cmd

	case refreshTickMsg:
		if m.screen != screenChat {
			return m, nil
		}
		return m, m.refreshCmd()

	case refreshResultMsg:
		if msg.err != nil {
			// session-fatal: back to the authenticate screen
			m.leaveChat()
			return m, nil
		}
		return m, scheduleRefresh()

	case loggedOutMsg:
		m.leaveChat()
		return m, nil
	}

	switch m.screen {
	case screenAuth:
		return m.updateAuth(msg)
	default:
		return m.updateChat(msg)
	}
}

func (m model) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		m.authBusy = false
		if msg.err != nil {
			// the screen only advances on success
			return m, nil
		}
		cmd := m.enterChat(msg.creds)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			m.registerMode = !m.registerMode
			if m.registerMode {
				m.authInputs = registerInputs()
			} else {
				m.authInputs = loginInputs()
			}
			m.authFocus = 0
			m.formErrors = map[string]string{}
			return m, textinput.Blink
		case "tab", "down":
			m.moveAuthFocus(1)
			return m, textinput.Blink
		case "shift+tab", "up":
			m.moveAuthFocus(-1)
			return m, textinput.Blink
		case "enter":
			if m.authBusy {
				return m, nil
			}
			return m.submitAuth()
		}
	}

	var cmd tea.Cmd
	m.authInputs[m.authFocus], cmd = m.authInputs[m.authFocus].Update(msg)
	return m, cmd
}

func (m *model) moveAuthFocus(delta int) {
	m.authInputs[m.authFocus].Blur()
	m.authFocus = (m.authFocus + delta + len(m.authInputs)) % len(m.authInputs)
	m.authInputs[m.authFocus].Focus()
}

func (m model) submitAuth() (tea.Model, tea.Cmd) {
	if m.registerMode {
		name := m.authInputs[regName].Value()
		email := m.authInputs[regEmail].Value()
		profilePic := m.authInputs[regProfilePic].Value()
		password := m.authInputs[regPassword].Value()
		confirm := m.authInputs[regConfirm].Value()
		m.formErrors = validateRegister(name, email, password, confirm)
		if len(m.formErrors) > 0 {
			return m, nil
		}
		m.authBusy = true
		return m, m.registerCmd(name, email, profilePic, password)
	}

	email := m.authInputs[loginEmail].Value()
	password := m.authInputs[loginPassword].Value()
	m.formErrors = validateLogin(email, password)
	if len(m.formErrors) > 0 {
		return m, nil
	}
	m.authBusy = true
	return m, m.loginCmd(email, password)
}

func (m model) updateChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case connectResultMsg:
		if msg.err != nil {
			m.status = "event channel unavailable: " + msg.err.Error()
			return m, nil
		}
		m.channel = msg.ch
		m.events = make(chan tea.Msg, 64)
		m.attachListeners()
		return m, waitEvent(m.events, m.channel.Done())

	case channelDownMsg:
		m.teardownChannel()
		m.status = "event channel closed"
		return m, nil

	case activeUsersMsg:
		m.activeUsers = []string(msg)
		return m, waitEvent(m.events, m.channel.Done())

	case incomingMsg:
		message := api.Message(msg)
		cmds := []tea.Cmd{waitEvent(m.events, m.channel.Done())}
		if m.list.HandleIncoming(message) {
			gen := m.list.BeginFetch()
			cmds = append(cmds, m.fetchConversationsCmd(gen))
		}
		m.thread.HandleIncoming(message)
		return m, tea.Batch(cmds...)

	case peerDisconnectMsg:
		m.thread.HandleDisconnect(msg.UserID, msg.LastActive)
		return m, waitEvent(m.events, m.channel.Done())

	case conversationsMsg:
		if msg.err != nil {
			m.list.FetchFailed(msg.gen)
			m.status = "conversations fetch failed: " + msg.err.Error()
			return m, nil
		}
		m.list.SetConversations(msg.gen, msg.convos)
		m.clampCursor()
		return m, nil

	case threadMsg:
		if msg.err != nil {
			m.thread.FetchFailed(msg.gen)
			m.status = "messages fetch failed: " + msg.err.Error()
			return m, nil
		}
		m.thread.SetMessages(msg.gen, msg.msgs)
		return m, nil

	case searchTickMsg:
		if query, ok := m.list.QueryReady(msg.seq); ok {
			return m, m.searchCmd(query)
		}
		return m, nil

	case searchResultMsg:
		if msg.err != nil {
			m.status = "search failed: " + msg.err.Error()
			return m, nil
		}
		m.list.SetSearchResults(msg.users)
		m.clampCursor()
		return m, nil

	case sentMsg:
		if msg.err != nil {
			m.status = "send failed: " + msg.err.Error()
			return m, nil
		}
		m.compose.SetValue("")
		newConversation := m.thread.ApplySent(msg.msg)
		m.list.ApplyLastMessage(msg.msg)
		if newConversation {
			gen := m.list.BeginFetch()
			return m, m.fetchConversationsCmd(gen)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleChatKey(msg)
	}

	return m.updateFocusedInput(msg)
}

func (m model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.teardownChannel()
		return m, tea.Quit
	case "ctrl+l":
		return m, m.logoutCmd()
	case "tab":
		m.cycleFocus(1)
		return m, textinput.Blink
	case "shift+tab":
		m.cycleFocus(-1)
		return m, textinput.Blink
	case "esc":
		if m.focus == focusSearch && m.search.Value() != "" {
			// clear button: empty query clears instantly, no debounce
			m.search.SetValue("")
			m.list.SetQuery("")
			m.cursor = 0
			return m, nil
		}
		m.setFocus(focusSidebar)
		return m, nil
	}

	switch m.focus {
	case focusSidebar:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < m.rowCount()-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			cmd := m.openSelection()
			return m, cmd
		}
		return m, nil

	case focusCompose:
		if msg.String() == "enter" {
			content := m.compose.Value()
			peer, ok := m.thread.Peer()
			if !ok || !m.thread.ValidateSend(content) {
				return m, nil
			}
			return m, m.sendCmd(content, peer.ID)
		}

	case focusSearch:
		if msg.String() == "enter" {
			m.setFocus(focusSidebar)
			return m, nil
		}
	}

	return m.updateFocusedInput(msg)
}

func (m model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusSearch:
		before := m.search.Value()
		m.search, cmd = m.search.Update(msg)
		if value := m.search.Value(); value != before {
			m.cursor = 0
			if seq, armed := m.list.SetQuery(value); armed {
				return m, tea.Batch(cmd, scheduleSearch(seq))
			}
		}
	case focusCompose:
		m.compose, cmd = m.compose.Update(msg)
	}
	return m, cmd
}

func (m *model) cycleFocus(delta int) {
	next := (int(m.focus) + delta + 3) % 3
	m.setFocus(paneFocus(next))
}

func (m *model) setFocus(f paneFocus) {
	m.focus = f
	m.search.Blur()
	m.compose.Blur()
	switch f {
	case focusSearch:
		m.search.Focus()
	case focusCompose:
		m.compose.Focus()
	}
}

func (m model) rowCount() int {
	if m.list.Searching() {
		return len(m.list.SearchResults())
	}
	return len(m.list.Conversations())
}

func (m *model) clampCursor() {
	if n := m.rowCount(); m.cursor >= n {
		m.cursor = maxInt(0, n-1)
	}
}

func (m *model) openSelection() tea.Cmd {
	if m.list.Searching() {
		users := m.list.SearchResults()
		if m.cursor >= len(users) {
			return nil
		}
		user := users[m.cursor]
		conversationID := ""
		if conv, ok := m.list.ConversationWith(user.ID); ok {
			conversationID = conv.ID
		}
		m.thread.Select(conversationID, user)
	} else {
		convos := m.list.Conversations()
		if m.cursor >= len(convos) {
			return nil
		}
		conv := convos[m.cursor]
		m.thread.Select(conv.ID, conv.OtherUser)
	}

	m.setFocus(focusCompose)
	gen, fetch := m.thread.BeginFetch()
	if !fetch {
		return nil
	}
	return m.fetchThreadCmd(gen, m.thread.ConversationID())
}

// --- view ---

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("64"))
	faintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("247"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("64"))
	onlineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	offlineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
	dayStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	sentStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("64"))
	recvStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
)

func (m model) View() string {
	if m.screen == screenAuth {
		return m.viewAuth()
	}
	return m.viewChat()
}

func (m model) viewAuth() string {
	var b strings.Builder

	if m.registerMode {
		b.WriteString(titleStyle.Render("Sign Up"))
	} else {
		b.WriteString(faintStyle.Render("Welcome back!") + "\n")
		b.WriteString(titleStyle.Render("Login"))
	}
	b.WriteString("\n\n")

	labels := []string{"email", "password"}
	if m.registerMode {
		labels = []string{"name", "email", "profilePic", "password", "confirmPassword"}
	}
	for i, in := range m.authInputs {
		b.WriteString(in.View() + "\n")
		if msg, ok := m.formErrors[labels[i]]; ok {
			b.WriteString(errorStyle.Render(msg) + "\n")
		}
	}

	b.WriteString("\n")
	if m.authBusy {
		b.WriteString(faintStyle.Render("Signing in...") + "\n")
	}
	b.WriteString(faintStyle.Render("enter: submit  tab: next field  ctrl+t: switch login/sign up  ctrl+c: quit"))

	return paneStyle.Render(b.String())
}

func (m model) viewChat() string {
	sidebar := m.viewSidebar()
	thread := m.viewThread()
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, thread)
	if m.status != "" {
		return body + "\n" + faintStyle.Render(m.status)
	}
	return body
}

func (m model) viewSidebar() string {
	var b strings.Builder
	b.WriteString(m.search.View() + "\n\n")

	now := time.Now()
	if m.list.Searching() {
		users := m.list.SearchResults()
		if len(users) == 0 {
			b.WriteString("No users found\n")
		}
		for i, user := range users {
			line := truncate(user.Name, sidebarWidth-4)
			if i == m.cursor {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line + "\n")
		}
	} else {
		convos := m.list.Conversations()
		if len(convos) == 0 {
			b.WriteString("Search a name to begin chatting\n")
		}
		for i, conv := range convos {
			b.WriteString(m.conversationRow(conv, i == m.cursor, now) + "\n")
		}
	}

	b.WriteString("\n" + faintStyle.Render("ctrl+l: logout"))
	return paneStyle.Width(sidebarWidth).Render(b.String())
}

func (m model) conversationRow(conv api.Conversation, selected bool, now time.Time) string {
	preview := "No messages yet"
	stamp := ""
	if len(conv.Messages) > 0 {
		preview = conv.Messages[0].Content
		stamp = timefmt.MessageTime(conv.Messages[0].CreatedAt, now)
	}

	dot := offlineStyle.Render("○")
	if containsID(m.activeUsers, conv.OtherUser.ID) {
		dot = onlineStyle.Render("●")
	}

	name := truncate(conv.OtherUser.Name, sidebarWidth-12)
	head := dot + " " + name
	if stamp != "" {
		head += faintStyle.Render("  " + stamp)
	}
	if selected {
		head = selectedStyle.Render("> ") + head
	} else {
		head = "  " + head
	}
	return head + "\n    " + faintStyle.Render(truncate(preview, sidebarWidth-6))
}

func (m model) viewThread() string {
	width := maxInt(40, m.width-sidebarWidth-6)

	peer, ok := m.thread.Peer()
	if !ok {
		welcome := "Welcome! 👋\nSelect a chat to start messaging"
		return paneStyle.Width(width).Render(welcome)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(peer.Name) + "\n")
	b.WriteString(faintStyle.Render(m.thread.StatusLabel(m.activeUsers)) + "\n\n")

	user, _ := m.sess.User()
	now := time.Now()
	groups := m.thread.Groups()
	switch {
	case m.thread.Loading():
		b.WriteString(faintStyle.Render("Loading messages...") + "\n")
	case len(groups) == 0:
		b.WriteString(faintStyle.Render("Start chatting with "+peer.Name+"!") + "\n")
	default:
		for _, group := range groups {
			header := timefmt.DateHeader(group.Date, now)
			b.WriteString(lipgloss.PlaceHorizontal(width-4, lipgloss.Center, dayStyle.Render(header)) + "\n")
			for _, msg := range group.Messages {
				b.WriteString(renderBubble(msg, msg.SenderID == user.ID, width-4) + "\n")
			}
		}
	}

	b.WriteString("\n" + m.compose.View())
	return paneStyle.Width(width).Render(b.String())
}

func renderBubble(msg api.Message, sent bool, width int) string {
	line := msg.Content + " " + faintStyle.Render(timefmt.Clock(msg.CreatedAt))
	if sent {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, sentStyle.Render(line))
	}
	return recvStyle.Render(line)
}

// --- validation, ported from the original forms ---

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s]{3,}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

func validateLogin(email string, password string) map[string]string {
	errs := map[string]string{}
	if email == "" {
		errs["email"] = "Please enter email"
		return errs
	}
	if password == "" {
		errs["password"] = "Please enter password"
	}
	return errs
}

func validateRegister(name string, email string, password string, confirm string) map[string]string {
	errs := map[string]string{}
	if !nameRe.MatchString(name) {
		errs["name"] = "Name must be at least 3 characters long and contain only letters and spaces."
		return errs
	}
	if !emailRe.MatchString(email) {
		errs["email"] = "Please enter a valid email address."
		return errs
	}
	if !validPassword(password) {
		errs["password"] = "Password must be at least 6 characters long, contain at least one uppercase letter, one symbol, and one number."
		return errs
	}
	if password != confirm {
		errs["confirmPassword"] = "Passwords do not match."
	}
	return errs
}

const passwordSymbols = "!@#$%^&*"

func validPassword(pw string) bool {
	if len(pw) < 6 {
		return false
	}
	var upper, digit, symbol bool
	for _, ch := range pw {
		switch {
		case ch >= 'A' && ch <= 'Z':
			upper = true
		case ch >= 'a' && ch <= 'z':
		case ch >= '0' && ch <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, ch):
			symbol = true
		default:
			return false
		}
	}
	return upper && digit && symbol
}

// --- small helpers ---

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// truncate trims s to at most n terminal cells, ending with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	return runewidth.Truncate(s, n, "…")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
