package contacts

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column positions in the contact sheet.
const (
	colName = iota
	colAffiliation
	colType
	colRole
	colEmail
)

// Contact is one row of the contact sheet.
type Contact struct {
	Name        string
	Affiliation string
	Type        string
	Role        string
	Email       string
}

// Label renders the contact as "Name, Role, Affiliation", leaving out blank parts.
func (c Contact) Label() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Name, c.Role, c.Affiliation} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Directory maps lower-cased email addresses to display labels.
type Directory struct {
	labels map[string]string
}

// NewDirectory builds a directory from contacts. Contacts without an email
// are ignored; a later contact replaces an earlier one with the same address.
func NewDirectory(contacts ...Contact) *Directory {
	d := &Directory{labels: make(map[string]string, len(contacts))}
	for _, c := range contacts {
		d.Add(c)
	}
	return d
}

// Add inserts or replaces a contact.
func (d *Directory) Add(c Contact) {
	email := strings.ToLower(strings.TrimSpace(c.Email))
	if email == "" {
		return
	}
	d.labels[email] = c.Label()
}

// Label returns the display label for an address.
func (d *Directory) Label(email string) (string, bool) {
	if d == nil {
		return "", false
	}
	label, ok := d.labels[strings.ToLower(strings.TrimSpace(email))]
	return label, ok
}

// Len returns the number of addresses in the directory.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.labels)
}

// Load reads the first sheet of the workbook at path. The first row is a
// header and is skipped. A missing file returns an error wrapping
// fs.ErrNotExist.
func Load(path string) (*Directory, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open contacts %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("contacts %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read contacts sheet %q: %w", sheets[0], err)
	}

	d := NewDirectory()
	for i, row := range rows {
		if i == 0 {
			continue
		}
		d.Add(Contact{
			Name:        cell(row, colName),
			Affiliation: cell(row, colAffiliation),
			Type:        cell(row, colType),
			Role:        cell(row, colRole),
			Email:       cell(row, colEmail),
		})
	}

	return d, nil
}

// cell returns a trimmed cell value; excelize drops trailing empty cells.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
