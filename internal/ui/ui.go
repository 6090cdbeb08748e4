package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lectern/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	CourseListView ViewState = iota
	LectureListView
	TranscriptListView
	DetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	view   ViewState
	store  models.Store
	user   *models.User
	width  int
	height int

	courseList      list.Model
	lectureList     list.Model
	transcriptList  list.Model
	selectedCourse  *models.Course
	selectedLecture *models.Lecture
	selectedEntry   *models.Transcript
	err             error
	help            help.Model
	keys            keyMap
}

// NewModel creates a new TUI model scoped to the logged-in user.
func NewModel(ctx context.Context, store models.Store, user *models.User) *Model {
	return &Model{
		ctx:   ctx,
		view:  CourseListView,
		store: store,
		user:  user,
		help:  help.New(),
		keys:  newKeyMap(),
	}
}

// Init initializes the TUI by fetching the user's courses.
func (m *Model) Init() tea.Cmd {
	return m.fetchCourses()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.courseList.Width() == 0 {
			m.courseList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.lectureList.Width() == 0 {
			m.lectureList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.transcriptList.Width() == 0 {
			m.transcriptList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case CourseListView:
			return m.handleCourseListKeys(msg)
		case LectureListView:
			return m.handleLectureListKeys(msg)
		case TranscriptListView:
			return m.handleTranscriptListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case coursesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		items := make([]list.Item, len(msg.courses))
		for i, c := range msg.courses {
			items[i] = courseItem{course: c}
		}
		m.courseList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.courseList.Title = fmt.Sprintf("%s's Courses", m.user.Username())
		m.courseList.SetSize(m.width-4, m.height-8)
		return m, nil

	case lecturesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = CourseListView
			return m, nil
		}
		items := make([]list.Item, len(msg.lectures))
		for i, l := range msg.lectures {
			items[i] = lectureItem{lecture: l}
		}
		m.lectureList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.lectureList.Title = fmt.Sprintf("Lectures in '%s'", m.selectedCourse.Name())
		m.lectureList.SetSize(m.width-4, m.height-8)
		m.view = LectureListView
		return m, nil

	case transcriptsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = LectureListView
			return m, nil
		}
		items := make([]list.Item, len(msg.transcripts))
		for i, t := range msg.transcripts {
			items[i] = transcriptItem{transcript: t}
		}
		m.transcriptList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.transcriptList.Title = fmt.Sprintf("Entries in '%s'", m.selectedLecture.Title())
		m.transcriptList.SetSize(m.width-4, m.height-8)
		m.view = TranscriptListView
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view == CourseListView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case CourseListView:
		return m.renderCourseList()
	case LectureListView:
		return m.renderLectureList()
	case TranscriptListView:
		return m.renderTranscriptList()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleCourseListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.courseList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(courseItem); ok {
				m.selectedCourse = item.course
				return m, m.fetchLectures(item.course.ID())
			}
		}
	}

	var cmd tea.Cmd
	m.courseList, cmd = m.courseList.Update(msg)
	return m, cmd
}

func (m *Model) handleLectureListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = CourseListView
		return m, nil
	case "enter":
		selected := m.lectureList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(lectureItem); ok {
				m.selectedLecture = item.lecture
				return m, m.fetchTranscripts(item.lecture.ID())
			}
		}
	}

	var cmd tea.Cmd
	m.lectureList, cmd = m.lectureList.Update(msg)
	return m, cmd
}

func (m *Model) handleTranscriptListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = LectureListView
		return m, nil
	case "enter":
		selected := m.transcriptList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(transcriptItem); ok {
				m.selectedEntry = item.transcript
				m.view = DetailView
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.transcriptList, cmd = m.transcriptList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = TranscriptListView
		m.selectedEntry = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case CourseListView:
		m.courseList, cmd = m.courseList.Update(msg)
	case LectureListView:
		m.lectureList, cmd = m.lectureList.Update(msg)
	case TranscriptListView:
		m.transcriptList, cmd = m.transcriptList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchCourses() tea.Cmd {
	return func() tea.Msg {
		courses, err := m.store.Courses().ListByUser(m.user.ID(), models.SortByDate)
		return coursesFetchedMsg{courses: courses, err: err}
	}
}

func (m *Model) fetchLectures(courseID int64) tea.Cmd {
	return func() tea.Msg {
		lectures, err := m.store.Lectures().ListByCourse(courseID, m.user.ID())
		return lecturesFetchedMsg{lectures: lectures, err: err}
	}
}

func (m *Model) fetchTranscripts(lectureID int64) tea.Cmd {
	return func() tea.Msg {
		transcripts, err := m.store.Transcripts().ListByLecture(lectureID, m.user.ID())
		return transcriptsFetchedMsg{transcripts: transcripts, err: err}
	}
}

func (m *Model) renderCourseList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.courseList.View(), helpView)
}

func (m *Model) renderLectureList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.lectureList.View(), helpView)
}

func (m *Model) renderTranscriptList() string {
	readKey := key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "read"),
	)
	helpKeys := []key.Binding{readKey, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.transcriptList.View(), helpView)
}

func (m *Model) renderDetail() string {
	if m.selectedEntry == nil {
		return ""
	}

	title := styles.title.Render(fmt.Sprintf("%s · %s", m.selectedLecture.Title(), m.selectedEntry.Kind()))
	meta := styles.help.Render(fmt.Sprintf("created %s", m.selectedEntry.CreatedAt().Format("2006-01-02 15:04")))
	if updated := m.selectedEntry.UpdatedAt(); updated != nil {
		meta += styles.help.Render(fmt.Sprintf(", edited %s", updated.Format("2006-01-02 15:04")))
	}

	content := m.selectedEntry.Content()
	if m.width > 8 {
		content = wrap(content, m.width-4)
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, meta, content, helpView)
}

// wrap breaks text on word boundaries at the given width.
func wrap(text string, width int) string {
	var out strings.Builder
	lineLen := 0
	for _, word := range strings.Fields(text) {
		if lineLen > 0 && lineLen+len(word)+1 > width {
			out.WriteString("\n")
			lineLen = 0
		} else if lineLen > 0 {
			out.WriteString(" ")
			lineLen++
		}
		out.WriteString(word)
		lineLen += len(word)
	}
	return out.String()
}
