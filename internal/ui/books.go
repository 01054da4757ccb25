package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hollis/circdesk/internal/api"
)

// entryMode distinguishes browsing a collection from filling in a form.
type entryMode int

const (
	modeBrowse entryMode = iota
	modeAdd
	modeEdit
)

// booksState holds the books screen: a cursor over the collection plus an
// optional open form for adding or editing one row.
type booksState struct {
	cursor int
	mode   entryMode
	editID int64
	form   form
}

const (
	bookFieldTitle = iota
	bookFieldAuthor
	bookFieldISBN
	bookFieldPublisher
	bookFieldYear
	bookFieldQuantity
)

func newBookForm(title string, book api.Book) form {
	year := ""
	if book.PublicationYear != 0 {
		year = strconv.Itoa(book.PublicationYear)
	}
	quantity := ""
	if book.Quantity != 0 {
		quantity = strconv.Itoa(book.Quantity)
	}
	return newForm(title,
		formField{label: "Title", value: book.Title},
		formField{label: "Author", value: book.Author},
		formField{label: "ISBN", value: book.ISBN},
		formField{label: "Publisher", value: book.Publisher},
		formField{label: "Year", placeholder: "e.g. 2008", value: year},
		formField{label: "Quantity", placeholder: "copies owned", value: quantity},
	)
}

func (m Model) handleBooksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	books := m.snapshot.Books

	switch msg.String() {
	case "j", "down":
		m.books.cursor = clamp(m.books.cursor+1, len(books))
	case "k", "up":
		m.books.cursor = clamp(m.books.cursor-1, len(books))
	case "g", "home":
		m.books.cursor = 0
	case "G", "end":
		m.books.cursor = clamp(len(books)-1, len(books))

	case "a":
		m.books.mode = modeAdd
		m.books.form = newBookForm("Add book", api.Book{})
		m.status = ""

	case "e", "enter":
		if len(books) == 0 {
			return m, nil
		}
		book := books[m.books.cursor]
		m.books.mode = modeEdit
		m.books.editID = book.ID
		m.books.form = newBookForm(fmt.Sprintf("Edit %q", book.Title), book)
		m.status = ""

	case "x", "delete":
		if len(books) == 0 {
			return m, nil
		}
		book := books[m.books.cursor]
		m.confirm = &confirmAction{
			prompt: fmt.Sprintf("Delete %q?", book.Title),
			accept: m.deleteBookCmd(book.ID),
		}
	}

	return m, nil
}

func (m Model) handleBookFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.books.mode = modeBrowse
		return m, nil

	case "enter":
		draft := api.BookDraft{
			Title:           m.books.form.Value(bookFieldTitle),
			Author:          m.books.form.Value(bookFieldAuthor),
			ISBN:            m.books.form.Value(bookFieldISBN),
			Publisher:       m.books.form.Value(bookFieldPublisher),
			PublicationYear: m.books.form.IntValue(bookFieldYear),
			Quantity:        m.books.form.IntValue(bookFieldQuantity),
		}
		mode, editID := m.books.mode, m.books.editID
		m.books.mode = modeBrowse
		if mode == modeAdd {
			return m, m.createBookCmd(draft)
		}
		return m, m.updateBookCmd(editID, draft)

	case "tab", "down":
		m.books.form.Next()
		return m, nil

	case "shift+tab", "up":
		m.books.form.Prev()
		return m, nil
	}

	cmd := m.books.form.Update(msg)
	return m, cmd
}

func (m Model) renderBooks() string {
	styles := m.theme.Styles()

	if m.books.mode != modeBrowse {
		return m.books.form.View(m.theme)
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Books"))
	b.WriteString("\n\n")

	if len(m.snapshot.Books) == 0 {
		b.WriteString(styles.MutedText.Render("No books in the catalog."))
		b.WriteString("\n")
		return b.String()
	}

	cols := []column{
		{title: "Title", width: 32},
		{title: "Author", width: 22},
		{title: "ISBN", width: 15},
		{title: "Publisher", width: 18},
		{title: "Year", width: 5},
		{title: "Avail", width: 5},
		{title: "Total", width: 5},
	}
	rows := make([][]string, 0, len(m.snapshot.Books))
	for _, book := range m.snapshot.Books {
		rows = append(rows, []string{
			book.Title,
			book.Author,
			book.ISBN,
			book.Publisher,
			fmt.Sprintf("%d", book.PublicationYear),
			fmt.Sprintf("%d", book.AvailableQuantity),
			fmt.Sprintf("%d", book.Quantity),
		})
	}
	b.WriteString(renderTable(m.theme, cols, rows, m.books.cursor, true))
	return b.String()
}

// Book mutation commands. Every mutation is followed by an unconditional
// collection re-fetch; the view never updates its copy speculatively.

func (m Model) createBookCmd(draft api.BookDraft) tea.Cmd {
	ctx, client, store := m.ctx, m.client, m.store
	return func() tea.Msg {
		created, err := client.CreateBook(ctx, draft)
		if err != nil {
			return statusMsg{text: api.Normalize(err, "Could not add the book."), isErr: true}
		}
		books, err := client.ListBooks(ctx)
		store.SetBooks(books, err)
		return statusMsg{text: fmt.Sprintf("Added %q.", created.Title)}
	}
}

func (m Model) updateBookCmd(id int64, draft api.BookDraft) tea.Cmd {
	ctx, client, store := m.ctx, m.client, m.store
	return func() tea.Msg {
		updated, err := client.UpdateBook(ctx, id, draft)
		if err != nil {
			return statusMsg{text: api.Normalize(err, "Could not update the book."), isErr: true}
		}
		books, err := client.ListBooks(ctx)
		store.SetBooks(books, err)
		return statusMsg{text: fmt.Sprintf("Updated %q.", updated.Title)}
	}
}

func (m Model) deleteBookCmd(id int64) tea.Cmd {
	ctx, client, store := m.ctx, m.client, m.store
	return func() tea.Msg {
		if err := client.DeleteBook(ctx, id); err != nil {
			return statusMsg{text: api.Normalize(err, "Could not delete the book."), isErr: true}
		}
		books, err := client.ListBooks(ctx)
		store.SetBooks(books, err)
		return statusMsg{text: "Book deleted."}
	}
}
